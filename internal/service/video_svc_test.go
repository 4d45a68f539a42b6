package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/refstash/refstash-go/internal/model"
)

// syncCall records one set-replacement call against the fake store.
type syncCall struct {
	videoID int64
	ids     []int64
}

// fakeVideoStore records write-path calls so tests can assert which
// association operations a service method performed.
type fakeVideoStore struct {
	syncedCategories []syncCall
	syncedTags       []syncCall
	attachedCats     []syncCall
	updated          bool
}

func (f *fakeVideoStore) FindByID(ctx context.Context, id int64) (*model.VideoReference, error) {
	return &model.VideoReference{ID: id, Title: "stub", SourceURL: "https://youtu.be/stub"}, nil
}

func (f *fakeVideoStore) Create(ctx context.Context, v *model.VideoReference) error {
	v.ID = 1
	return nil
}

func (f *fakeVideoStore) Update(ctx context.Context, v *model.VideoReference) error {
	f.updated = true
	v.UpdatedAt = time.Now()
	return nil
}

func (f *fakeVideoStore) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeVideoStore) AttachTag(ctx context.Context, videoID, tagID int64) error { return nil }

func (f *fakeVideoStore) DetachTag(ctx context.Context, videoID, tagID int64) error { return nil }

func (f *fakeVideoStore) SyncTags(ctx context.Context, videoID int64, tagIDs []int64) error {
	f.syncedTags = append(f.syncedTags, syncCall{videoID, tagIDs})
	return nil
}

func (f *fakeVideoStore) AttachCategory(ctx context.Context, videoID, categoryID int64) error {
	f.attachedCats = append(f.attachedCats, syncCall{videoID, []int64{categoryID}})
	return nil
}

func (f *fakeVideoStore) DetachCategory(ctx context.Context, videoID, categoryID int64) error {
	return nil
}

func (f *fakeVideoStore) SyncCategories(ctx context.Context, videoID int64, categoryIDs []int64) error {
	f.syncedCategories = append(f.syncedCategories, syncCall{videoID, categoryIDs})
	return nil
}

func (f *fakeVideoStore) SyncTransitionTypes(ctx context.Context, videoID int64, typeIDs []int64) error {
	return nil
}

func (f *fakeVideoStore) LoadAssociations(ctx context.Context, videos []model.VideoReference) ([]model.VideoReference, error) {
	return videos, nil
}

// fakeTagStore hands out ids by insertion order.
type fakeTagStore struct {
	requested []string
}

func (f *fakeTagStore) FindTag(ctx context.Context, id int64) (*model.Tag, error) {
	return &model.Tag{ID: id, Name: "stub"}, nil
}

func (f *fakeTagStore) GetOrCreateTag(ctx context.Context, name string) (*model.Tag, error) {
	f.requested = append(f.requested, name)
	return &model.Tag{ID: int64(len(f.requested)), Name: name}, nil
}

func newTestVideoService(store *fakeVideoStore, tags *fakeTagStore) *VideoService {
	return NewVideoService(store, tags, nil, nil, &CacheService{})
}

func TestVideoServiceUpdate_ReplacesCategorySet(t *testing.T) {
	store := &fakeVideoStore{}
	svc := newTestVideoService(store, &fakeTagStore{})

	in := VideoInput{
		Title:       "Neon product intro",
		SourceURL:   "https://youtu.be/abc",
		CategoryIDs: []int64{2},
	}
	if _, err := svc.Update(context.Background(), 7, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !store.updated {
		t.Error("video row was not updated")
	}
	want := []syncCall{{7, []int64{2}}}
	if !reflect.DeepEqual(store.syncedCategories, want) {
		t.Errorf("category sync calls = %v, want %v", store.syncedCategories, want)
	}
	// A category set in the input replaces the whole set. Attach-only would
	// leave categories dropped from the payload still associated.
	if len(store.attachedCats) != 0 {
		t.Errorf("unexpected single-category attaches: %v", store.attachedCats)
	}
}

func TestVideoServiceUpdate_NilSetsLeaveAssociationsAlone(t *testing.T) {
	store := &fakeVideoStore{}
	svc := newTestVideoService(store, &fakeTagStore{})

	in := VideoInput{Title: "Untouched", SourceURL: "https://youtu.be/abc"}
	if _, err := svc.Update(context.Background(), 7, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if len(store.syncedCategories) != 0 || len(store.syncedTags) != 0 {
		t.Errorf("absent sets must not be synced: categories %v, tags %v",
			store.syncedCategories, store.syncedTags)
	}
}

func TestVideoServiceUpdate_ResolvesTagNames(t *testing.T) {
	store := &fakeVideoStore{}
	tags := &fakeTagStore{}
	svc := newTestVideoService(store, tags)

	in := VideoInput{
		Title:     "Tagged",
		SourceURL: "https://youtu.be/abc",
		Tags:      []string{" retro ", "", "synthwave"},
	}
	if _, err := svc.Update(context.Background(), 7, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if !reflect.DeepEqual(tags.requested, []string{"retro", "synthwave"}) {
		t.Errorf("resolved tag names = %v", tags.requested)
	}
	want := []syncCall{{7, []int64{1, 2}}}
	if !reflect.DeepEqual(store.syncedTags, want) {
		t.Errorf("tag sync calls = %v, want %v", store.syncedTags, want)
	}
}

func TestVideoServiceValidate(t *testing.T) {
	svc := newTestVideoService(&fakeVideoStore{}, &fakeTagStore{})
	dur := 0
	rating := 11
	bad := "carrier-pigeon"

	tests := []struct {
		name string
		in   VideoInput
	}{
		{"missing title", VideoInput{SourceURL: "https://youtu.be/x"}},
		{"missing source url", VideoInput{Title: "t"}},
		{"zero duration", VideoInput{Title: "t", SourceURL: "u", DurationSec: &dur}},
		{"rating out of range", VideoInput{Title: "t", SourceURL: "u", Rating: &rating}},
		{"unknown platform", VideoInput{Title: "t", SourceURL: "u", Platform: &bad}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			if !errors.Is(err, ErrValidation) {
				t.Errorf("err = %v, want validation failure", err)
			}
		})
	}
}
