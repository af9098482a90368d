package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/studyflow/internal/model"
)

type Type string

const (
	TypeMove         Type = "move"
	TypeComplete     Type = "complete"
	TypeSkip         Type = "skip"
	TypeSuggest      Type = "suggest"
	TypeRedistribute Type = "redistribute"
	TypeUndo         Type = "undo"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type MoveArgs struct {
	Key  model.SessionKey
	To   string
	Date model.Date
}

type CompleteArgs struct {
	Key model.SessionKey
}

type SkipArgs struct {
	Key model.SessionKey
}

type SuggestArgs struct {
	Key model.SessionKey
}

type RedistributeArgs struct {
	Days int
}

type UndoArgs struct {
	Key model.SessionKey
}

type Command struct {
	Type         Type
	Raw          string
	Move         *MoveArgs
	Complete     *CompleteArgs
	Skip         *SkipArgs
	Suggest      *SuggestArgs
	Redistribute *RedistributeArgs
	Undo         *UndoArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeMove:
		return parseMove(input, args)
	case TypeComplete:
		return parseComplete(input, args)
	case TypeSkip:
		return parseSkip(input, args)
	case TypeSuggest:
		return parseSuggest(input, args)
	case TypeRedistribute:
		return parseRedistribute(input, args)
	case TypeUndo:
		return parseUndo(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseMove(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "move requires a session and a time"}
	}
	key, err := parseSessionKey(args[0])
	if err != nil {
		return Command{}, err
	}
	to := args[1]
	if model.TimeToMinutes(to) < 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("move time %q is not HH:MM", to)}
	}
	move := &MoveArgs{Key: key, To: model.MinutesToTime(model.TimeToMinutes(to))}
	if len(args) >= 4 && strings.ToLower(args[2]) == "on" {
		date, parseErr := model.ParseDate(args[3])
		if parseErr != nil {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("move date %q is not YYYY-MM-DD", args[3])}
		}
		move.Date = date
	}
	return Command{Type: TypeMove, Raw: raw, Move: move}, nil
}

func parseComplete(raw string, args []string) (Command, error) {
	key, err := singleSessionArg("complete", args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeComplete, Raw: raw, Complete: &CompleteArgs{Key: key}}, nil
}

func parseSkip(raw string, args []string) (Command, error) {
	key, err := singleSessionArg("skip", args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeSkip, Raw: raw, Skip: &SkipArgs{Key: key}}, nil
}

func parseSuggest(raw string, args []string) (Command, error) {
	key, err := singleSessionArg("suggest", args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeSuggest, Raw: raw, Suggest: &SuggestArgs{Key: key}}, nil
}

func parseRedistribute(raw string, args []string) (Command, error) {
	days := 0
	if len(args) >= 2 && strings.ToLower(args[0]) == "days" {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("redistribute days %q must be a positive number", args[1])}
		}
		days = n
	}
	return Command{Type: TypeRedistribute, Raw: raw, Redistribute: &RedistributeArgs{Days: days}}, nil
}

func parseUndo(raw string, args []string) (Command, error) {
	key, err := singleSessionArg("undo", args)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeUndo, Raw: raw, Undo: &UndoArgs{Key: key}}, nil
}

func singleSessionArg(name string, args []string) (model.SessionKey, error) {
	if len(args) == 0 {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a session", name)}
	}
	return parseSessionKey(args[0])
}

func parseSessionKey(arg string) (model.SessionKey, error) {
	taskID, numberPart, found := strings.Cut(arg, "#")
	if !found || strings.TrimSpace(taskID) == "" {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("session %q must look like task#number", arg)}
	}
	number, err := strconv.Atoi(numberPart)
	if err != nil || number < 1 {
		return "", &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("session number in %q must be a positive number", arg)}
	}
	return model.KeyOf(taskID, number), nil
}
