package teacher_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xenn00/livestream-service/internal/entity"
	app_error "github.com/xenn00/livestream-service/internal/errors"
	"github.com/xenn00/livestream-service/internal/utils"
	"github.com/xenn00/livestream-service/state"
	"gorm.io/gorm"
)

const teacherCacheTTL = 10 * time.Minute

type TeacherRepo struct {
	AppState *state.AppState
}

func NewTeacherRepo(appState *state.AppState) TeacherRepoContract {
	return &TeacherRepo{
		AppState: appState,
	}
}

func (r *TeacherRepo) FindByID(ctx context.Context, id string) (*entity.Teacher, *app_error.AppError) {
	cacheKey := fmt.Sprintf("teacher:%s", id)

	cached, cerr := utils.GetCacheData[entity.Teacher](ctx, r.AppState.Redis, cacheKey)
	if cerr != nil {
		log.Warn().Err(cerr).Str("teacherID", id).Msg("teacher cache read failed, falling back to db")
	}
	if cached != nil {
		return cached, nil
	}

	var teacher entity.Teacher
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&teacher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("teacher not found", "ownerId")
		}
		return nil, app_error.Internal("unexpected error occur when fetch teacher", "db-error")
	}

	if err := utils.SetCacheData(ctx, r.AppState.Redis, cacheKey, &teacher, teacherCacheTTL); err != nil {
		log.Warn().Err(err).Str("teacherID", id).Msg("teacher cache write failed")
	}

	return &teacher, nil
}
