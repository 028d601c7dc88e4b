package tokens

import "context"

type Repository interface {
	Create(ctx context.Context, userID, scope, token string) error
	Delete(ctx context.Context, userID, token string) error
}
