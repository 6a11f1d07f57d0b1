package combatserver

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cory-johannsen/geoquest/internal/game/combaterr"
)

var kindCodes = map[combaterr.Kind]codes.Code{
	combaterr.KindInvalidIntent:          codes.InvalidArgument,
	combaterr.KindInvalidSnapshot:        codes.InvalidArgument,
	combaterr.KindInvalidDiceNotation:    codes.InvalidArgument,
	combaterr.KindUnknownAbilityOrSpell:  codes.InvalidArgument,
	combaterr.KindActionAlreadyUsed:      codes.FailedPrecondition,
	combaterr.KindBonusActionAlreadyUsed: codes.FailedPrecondition,
	combaterr.KindAbilityExhausted:       codes.FailedPrecondition,
	combaterr.KindNoSpellSlots:           codes.FailedPrecondition,
	combaterr.KindSpellUnavailable:       codes.FailedPrecondition,
	combaterr.KindInsufficientMana:       codes.FailedPrecondition,
	combaterr.KindNotPlayerTurn:          codes.FailedPrecondition,
	combaterr.KindSessionBusy:            codes.Aborted,
	combaterr.KindSessionTerminated:      codes.NotFound,
}

// statusOf maps err to a gRPC status. Rules rejections keep their kind as the
// message prefix; anything else is Internal.
func statusOf(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	if code, ok := kindCodes[combaterr.KindOf(err)]; ok {
		return status.Error(code, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}

// KindFromStatus recovers the rejection kind from a status produced by statusOf.
//
// Postcondition: Returns KindNone when err carries no known kind prefix.
func KindFromStatus(err error) combaterr.Kind {
	st, ok := status.FromError(err)
	if !ok || st.Code() == codes.OK {
		return combaterr.KindNone
	}
	for kind := range kindCodes {
		if strings.HasPrefix(st.Message(), string(kind)+":") || st.Message() == string(kind) {
			return kind
		}
	}
	return combaterr.KindNone
}
