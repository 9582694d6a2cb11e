package controllers

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"

	"github.com/GitShailendra/HackOnX-sub001/notify"
	"github.com/GitShailendra/HackOnX-sub001/storage"
)

// In-memory implementations of the storage interfaces so the controller suite
// runs without DynamoDB or S3. The application fake mirrors the version
// compare-and-swap of the real store.

type memoryApplicationStorage struct {
	mu    sync.Mutex
	items map[string]*storage.Application
}

func newMemoryApplicationStorage() *memoryApplicationStorage {
	return &memoryApplicationStorage{items: make(map[string]*storage.Application)}
}

func copyApplication(app *storage.Application) *storage.Application {
	cp := *app
	cp.Members = append([]string(nil), app.Members...)
	cp.Attachments = append([]storage.Attachment(nil), app.Attachments...)
	cp.Ratings = append([]storage.Rating(nil), app.Ratings...)
	return &cp
}

func (s *memoryApplicationStorage) Get(_ context.Context, id string) (*storage.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	app, ok := s.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyApplication(app), nil
}

func (s *memoryApplicationStorage) GetByEmail(_ context.Context, email string) (*storage.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, app := range s.items {
		if app.Email == email {
			return copyApplication(app), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *memoryApplicationStorage) GetAll(_ context.Context) ([]*storage.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apps := make([]*storage.Application, 0, len(s.items))
	for _, app := range s.items {
		apps = append(apps, copyApplication(app))
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (s *memoryApplicationStorage) GetByStatus(_ context.Context, status string) ([]*storage.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var apps []*storage.Application
	for _, app := range s.items {
		if app.Status == status {
			apps = append(apps, copyApplication(app))
		}
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].ID < apps[j].ID })
	return apps, nil
}

func (s *memoryApplicationStorage) Create(_ context.Context, app *storage.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[app.ID]; ok {
		return storage.ErrAlreadyExists
	}
	s.items[app.ID] = copyApplication(app)
	return nil
}

func (s *memoryApplicationStorage) Update(_ context.Context, app *storage.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.items[app.ID]; ok && stored.Version != app.Version {
		return storage.ErrVersionConflict
	}
	app.Version++
	s.items[app.ID] = copyApplication(app)
	return nil
}

func (s *memoryApplicationStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

type memoryAccountStorage struct {
	mu    sync.Mutex
	items map[string]*storage.Account
}

func newMemoryAccountStorage() *memoryAccountStorage {
	return &memoryAccountStorage{items: make(map[string]*storage.Account)}
}

func (s *memoryAccountStorage) Get(_ context.Context, email string) (*storage.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.items[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *account
	return &cp, nil
}

func (s *memoryAccountStorage) GetAll(_ context.Context) ([]*storage.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts := make([]*storage.Account, 0, len(s.items))
	for _, a := range s.items {
		cp := *a
		accounts = append(accounts, &cp)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Email < accounts[j].Email })
	return accounts, nil
}

func (s *memoryAccountStorage) Create(_ context.Context, account *storage.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[account.Email]; ok {
		return storage.ErrAlreadyExists
	}
	cp := *account
	s.items[account.Email] = &cp
	return nil
}

func (s *memoryAccountStorage) Delete(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, email)
	return nil
}

type memoryBlob struct {
	contentType string
	data        []byte
}

type memoryAttachmentStorage struct {
	mu    sync.Mutex
	blobs map[string]memoryBlob
}

func newMemoryAttachmentStorage() *memoryAttachmentStorage {
	return &memoryAttachmentStorage{blobs: make(map[string]memoryBlob)}
}

func (s *memoryAttachmentStorage) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = memoryBlob{contentType: contentType, data: data}
	return nil
}

func (s *memoryAttachmentStorage) Get(_ context.Context, key string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, "", storage.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(blob.data)), blob.contentType, nil
}

func (s *memoryAttachmentStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// rivalWriterApplicationStorage fails the first update with a version
// conflict after letting a rival's mutation land, the way a concurrent
// writer that won the race would.
type rivalWriterApplicationStorage struct {
	*memoryApplicationStorage
	rival func(*storage.Application)

	mu        sync.Mutex
	conflicts int
}

func (s *rivalWriterApplicationStorage) Update(ctx context.Context, app *storage.Application) error {
	s.mu.Lock()
	fire := s.conflicts == 0 && s.rival != nil
	if fire {
		s.conflicts++
	}
	s.mu.Unlock()

	if fire {
		current, err := s.memoryApplicationStorage.Get(ctx, app.ID)
		if err != nil {
			return err
		}
		s.rival(current)
		if err := s.memoryApplicationStorage.Update(ctx, current); err != nil {
			return err
		}
		return storage.ErrVersionConflict
	}
	return s.memoryApplicationStorage.Update(ctx, app)
}

// stuckApplicationStorage rejects every update with a version conflict.
type stuckApplicationStorage struct {
	*memoryApplicationStorage

	mu      sync.Mutex
	updates int
}

func (s *stuckApplicationStorage) Update(_ context.Context, _ *storage.Application) error {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
	return storage.ErrVersionConflict
}

// unavailableApplicationStorage answers every read as if the store were down.
type unavailableApplicationStorage struct {
	*memoryApplicationStorage
}

func (s *unavailableApplicationStorage) Get(_ context.Context, _ string) (*storage.Application, error) {
	return nil, storage.ErrUnavailable
}

func (s *unavailableApplicationStorage) GetByEmail(_ context.Context, _ string) (*storage.Application, error) {
	return nil, storage.ErrUnavailable
}

func (s *unavailableApplicationStorage) GetByStatus(_ context.Context, _ string) ([]*storage.Application, error) {
	return nil, storage.ErrUnavailable
}

// unavailableAttachmentStorage refuses writes as if the bucket were down.
type unavailableAttachmentStorage struct {
	*memoryAttachmentStorage
}

func (s *unavailableAttachmentStorage) Put(_ context.Context, _, _ string, _ io.Reader, _ int64) error {
	return storage.ErrUnavailable
}

// recordingNotifier captures dispatched messages instead of sending mail.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (n *recordingNotifier) Dispatch(msg notify.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) sent() []notify.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Message(nil), n.messages...)
}
