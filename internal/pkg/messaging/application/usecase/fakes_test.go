package usecase

import (
	"context"
	"errors"
	"sync"

	tport "github.com/RiteshJadhav021/connectu-messaging/internal/infrastructure/transport/port"
	messaging "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/domain"
	repository "github.com/RiteshJadhav021/connectu-messaging/internal/pkg/messaging/persistence/repository/port"
)

const (
	idA = "aaaaaaaaaaaaaaaaaaaaaaaa"
	idB = "bbbbbbbbbbbbbbbbbbbbbbbb"
	idC = "cccccccccccccccccccccccc"
)

type fakeMessageRepo struct {
	mu      sync.Mutex
	history []messaging.Message
	getErr  error
	saveErr error
	nextID  int
}

func (f *fakeMessageRepo) GetConversation(context.Context, string, string) ([]messaging.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return append([]messaging.Message(nil), f.history...), nil
}

func (f *fakeMessageRepo) SaveMessage(_ context.Context, m messaging.Message) (messaging.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return messaging.Message{}, f.saveErr
	}
	f.nextID++
	m.ID = "m" + string(rune('0'+f.nextID))
	return m, nil
}

type fakeTransport struct {
	mu      sync.Mutex
	joinErr error
	joined  []string
	sent    []messaging.Message
	receive tport.ReceiveHandler
	onClose func(error)
}

func (f *fakeTransport) Connect(context.Context) error { return nil }

func (f *fakeTransport) Disconnect() error { return nil }

func (f *fakeTransport) JoinRoom(_ context.Context, roomID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.joinErr != nil {
		return f.joinErr
	}
	f.joined = append(f.joined, roomID)
	return nil
}

func (f *fakeTransport) SendMessage(_ context.Context, _ string, m messaging.Message) error {
	f.mu.Lock()
	f.sent = append(f.sent, m)
	f.mu.Unlock()
	return nil
}

func (f *fakeTransport) OnReceive(h tport.ReceiveHandler) {
	f.mu.Lock()
	f.receive = h
	f.mu.Unlock()
}

func (f *fakeTransport) OffReceive() {
	f.mu.Lock()
	f.receive = nil
	f.mu.Unlock()
}

func (f *fakeTransport) OnClose(h func(error)) {
	f.mu.Lock()
	f.onClose = h
	f.mu.Unlock()
}

func (f *fakeTransport) deliver(m messaging.Message) {
	f.mu.Lock()
	h := f.receive
	f.mu.Unlock()
	if h != nil {
		h(m)
	}
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]repository.Profile
	err      error
	calls    int
}

func (f *fakeProfileRepo) GetProfile(_ context.Context, _ messaging.Role, id string) (repository.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return repository.Profile{}, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return repository.Profile{}, errors.New("profile not found")
	}
	return p, nil
}
