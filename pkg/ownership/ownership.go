// Package ownership binds every stored resource to the user who created it.
//
// Retrieve answers "does this id exist AND belong to this user" with a single
// outcome for both failure modes, so probing ids reveals nothing about other
// users' data.
package ownership

import (
	"context"
	"database/sql"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Owned is implemented by models that carry an owning user.
type Owned interface {
	OwnerID() int
}

// Retrieve loads the row of T with the given id and checks that it belongs to
// userID. A missing row and a row owned by someone else both return the same
// Forbidden error, built from action (e.g. "Accessing this chapter").
func Retrieve[T any, PT interface {
	*T
	Owned
}](ctx context.Context, db bun.IDB, id, userID int, action string) (PT, error) {
	model := PT(new(T))

	err := db.NewSelect().
		Model(model).
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.Forbidden(action)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if model.OwnerID() != userID {
		return nil, errcodes.Forbidden(action)
	}

	return model, nil
}

// Check is Retrieve for callers that only need the verdict.
func Check[T any, PT interface {
	*T
	Owned
}](ctx context.Context, db bun.IDB, id, userID int, action string) error {
	_, err := Retrieve[T, PT](ctx, db, id, userID, action)
	return err
}
