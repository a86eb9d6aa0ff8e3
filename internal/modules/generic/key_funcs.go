package generic

import (
	"errors"
	"strings"

	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/constants"
)

func setKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) != 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:2]}, nil
}

func getKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) != 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:2]}, nil
}

func delKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:]}, nil
}

func existsKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:]}, nil
}

func pingKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	return command.KeyExtractionFuncResult{}, nil
}

func clusterKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) != 2 || strings.ToUpper(cmd[1]) != "NODES" {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{}, nil
}
