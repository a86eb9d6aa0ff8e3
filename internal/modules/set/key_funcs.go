package set

import (
	"errors"

	"github.com/mwinuka/setshard/internal/command"
	"github.com/mwinuka/setshard/internal/constants"
	"github.com/mwinuka/setshard/internal/setval"
)

func saddKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:2]}, nil
}

func sremKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:2]}, nil
}

func sismemberKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) != 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:2]}, nil
}

func smismemberKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:2]}, nil
}

func scardKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) != 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:2]}, nil
}

func smembersKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) != 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:2]}, nil
}

func srandmemberKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 || len(cmd) > 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:2]}, nil
}

func spopKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 || len(cmd) > 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:2]}, nil
}

func smoveKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) != 4 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:3]}, nil
}

func sunionKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:]}, nil
}

func sunionstoreKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:2], ReadKeys: cmd[2:]}, nil
}

func sinterKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:]}, nil
}

func sinterstoreKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:2], ReadKeys: cmd[2:]}, nil
}

// sintercardKeyFunc handles "SINTERCARD numkeys key [key ...] [LIMIT n]".
// numkeys is not itself a key; it tells us where the key list ends.
func sintercardKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	numkeys, ok := setval.ParseCanonicalInt(cmd[1])
	if !ok || numkeys <= 0 || int(numkeys) > len(cmd)-2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.NotIntegerResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[2 : 2+int(numkeys)]}, nil
}

func sdiffKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 2 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{ReadKeys: cmd[1:]}, nil
}

func sdiffstoreKeyFunc(cmd []string) (command.KeyExtractionFuncResult, error) {
	if len(cmd) < 3 {
		return command.KeyExtractionFuncResult{}, errors.New(constants.WrongArgsResponse)
	}
	return command.KeyExtractionFuncResult{WriteKeys: cmd[1:2], ReadKeys: cmd[2:]}, nil
}
