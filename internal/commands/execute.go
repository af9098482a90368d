package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Move         func(MoveArgs) (Result, error)
	Complete     func(CompleteArgs) (Result, error)
	Skip         func(SkipArgs) (Result, error)
	Suggest      func(SuggestArgs) (Result, error)
	Redistribute func(RedistributeArgs) (Result, error)
	Undo         func(UndoArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeMove:
		if handlers.Move == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "move handler not configured"}
		}
		return handlers.Move(*cmd.Move)
	case TypeComplete:
		if handlers.Complete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "complete handler not configured"}
		}
		return handlers.Complete(*cmd.Complete)
	case TypeSkip:
		if handlers.Skip == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "skip handler not configured"}
		}
		return handlers.Skip(*cmd.Skip)
	case TypeSuggest:
		if handlers.Suggest == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "suggest handler not configured"}
		}
		return handlers.Suggest(*cmd.Suggest)
	case TypeRedistribute:
		if handlers.Redistribute == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "redistribute handler not configured"}
		}
		return handlers.Redistribute(*cmd.Redistribute)
	case TypeUndo:
		if handlers.Undo == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "undo handler not configured"}
		}
		return handlers.Undo(*cmd.Undo)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
