package archive_repo

import (
	"context"
	"fmt"

	"github.com/xenn00/livestream-service/internal/entity"
	app_error "github.com/xenn00/livestream-service/internal/errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const archiveCollection = "room_archive"

// ArchiveRepoContract is the durable record of rooms, written behind the
// live store by the worker pool. Retention and deletion are external
// concerns; this repo only upserts snapshots.
type ArchiveRepoContract interface {
	Upsert(ctx context.Context, room *entity.Room) *app_error.AppError
}

type ArchiveRepo struct {
	Collection *mongo.Collection
}

func NewArchiveRepo(client *mongo.Client, database string) ArchiveRepoContract {
	return &ArchiveRepo{
		Collection: client.Database(database).Collection(archiveCollection),
	}
}

func (r *ArchiveRepo) Upsert(ctx context.Context, room *entity.Room) *app_error.AppError {
	filter := bson.M{"token": room.Token}
	update := bson.M{"$set": room}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	if err != nil {
		return app_error.Internal(fmt.Sprintf("failed to archive room: %v", err), "mongo-upsert")
	}
	return nil
}
