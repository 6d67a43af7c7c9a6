package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/model"
	"github.com/weiwei-tsao/space-missions-dashboard/pkg/util"
	"google.golang.org/api/iterator"
)

const (
	missionsCollection  = "missions"
	locationsCollection = "locations"
	batchSize           = 400
)

// MissionRepository reads and writes the raw mission and coordinate tables in Firestore.
type MissionRepository struct {
	client *firestore.Client
}

func NewMissionRepository(client *firestore.Client) *MissionRepository {
	return &MissionRepository{client: client}
}

// FetchMissions loads every mission document in source row order.
func (r *MissionRepository) FetchMissions(ctx context.Context) ([]model.MissionRecord, error) {
	iter := r.client.Collection(missionsCollection).OrderBy("index", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var result []model.MissionRecord
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate missions: %w", err)
		}
		var m model.MissionRecord
		if err := doc.DataTo(&m); err != nil {
			return nil, fmt.Errorf("decode mission %s: %w", doc.Ref.ID, err)
		}
		result = append(result, m)
	}
	return result, nil
}

// FetchCoordinates loads the location lookup table in source row order.
func (r *MissionRepository) FetchCoordinates(ctx context.Context) ([]model.LocationCoordinate, error) {
	iter := r.client.Collection(locationsCollection).OrderBy("index", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var result []model.LocationCoordinate
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate locations: %w", err)
		}
		var c model.LocationCoordinate
		if err := doc.DataTo(&c); err != nil {
			return nil, fmt.Errorf("decode location %s: %w", doc.Ref.ID, err)
		}
		result = append(result, c)
	}
	return result, nil
}

// BatchUpsertMissions writes missions keyed by row index, in batches to reduce
// round trips. Identical rows stay separate documents.
func (r *MissionRepository) BatchUpsertMissions(ctx context.Context, missions []model.MissionRecord) error {
	for start := 0; start < len(missions); start += batchSize {
		end := min(start+batchSize, len(missions))
		batch := r.client.Batch()
		for _, m := range missions[start:end] {
			ref := r.client.Collection(missionsCollection).Doc(util.DocID(m.Index))
			batch.Set(ref, m)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit missions batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

// BatchUpsertCoordinates writes the lookup table keyed by row index.
func (r *MissionRepository) BatchUpsertCoordinates(ctx context.Context, coords []model.LocationCoordinate) error {
	for start := 0; start < len(coords); start += batchSize {
		end := min(start+batchSize, len(coords))
		batch := r.client.Batch()
		for _, c := range coords[start:end] {
			ref := r.client.Collection(locationsCollection).Doc(util.DocID(c.Index))
			batch.Set(ref, c)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return fmt.Errorf("commit locations batch [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}
