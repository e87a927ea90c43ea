// pkg/utils/ctxutils.go

package utils

import (
	"context"

	"hospital-meals/pkg/contextkeys"
	apperrors "hospital-meals/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}

// WithUser кладёт данные пользователя в контекст запроса.
func WithUser(ctx context.Context, userID uint64, role, username string) context.Context {
	ctx = context.WithValue(ctx, contextkeys.UserIDKey, userID)
	ctx = context.WithValue(ctx, contextkeys.UserRoleKey, role)
	return context.WithValue(ctx, contextkeys.UsernameKey, username)
}
