package utils

import (
	"context"

	"card-system/pkg/contextkeys"
	apperrors "card-system/pkg/errors"
	"card-system/pkg/types"
)

func GetActorFromCtx(ctx context.Context) (types.Actor, error) {
	actor, ok := ctx.Value(contextkeys.ActorKey).(types.Actor)
	if !ok {
		return types.Actor{}, apperrors.ErrActorNotFoundInContext
	}
	return actor, nil
}
