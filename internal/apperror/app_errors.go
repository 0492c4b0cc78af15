package apperror

import "errors"

var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrOutOfTurn          = errors.New("it's not your turn")
	ErrGameConcluded      = errors.New("game is already concluded")
	ErrNotSeated          = errors.New("only a seated player can do that")
	ErrUnknownSkill       = errors.New("unknown skill")
	ErrUnknownParticipant = errors.New("participant is not registered in this room")
	ErrSkillAlreadyUsed   = errors.New("skill is already used")
	ErrSkillNotAllowed    = errors.New("skill cannot be combined with a placement")
	ErrNoHistory          = errors.New("nothing to rewind")
	ErrInvalidTarget      = errors.New("invalid target")
	ErrMalformedRequest   = errors.New("malformed request")
)
