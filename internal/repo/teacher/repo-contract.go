package teacher_repo

import (
	"context"

	"github.com/xenn00/livestream-service/internal/entity"
	app_error "github.com/xenn00/livestream-service/internal/errors"
)

// TeacherRepoContract resolves an authenticated identity to a teacher
// account. Accounts are owned by the account service; this repo is
// read-only.
type TeacherRepoContract interface {
	FindByID(ctx context.Context, id string) (*entity.Teacher, *app_error.AppError)
}
