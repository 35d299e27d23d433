package notifications

import (
	"errors"
	"sync"
	"time"

	"github.com/adilemreee/sevgilim-sub001/models"
	"github.com/adilemreee/sevgilim-sub001/models/dbmodels"
	fcm "github.com/appleboy/go-fcm"
	"github.com/google/uuid"
)

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	failIDs map[string]bool
	gets    map[string]int
	removed [][2]string
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   map[string]*models.User{},
		failIDs: map[string]bool{},
		gets:    map[string]int{},
	}
}

func (f *fakeUserStore) add(id, name string, tokens ...string) {
	f.users[id] = &models.User{ID: id, DisplayName: name, Tokens: tokens}
}

func (f *fakeUserStore) Get(id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets[id]++
	if f.failIDs[id] {
		return nil, errors.New("load failed")
	}
	return f.users[id], nil
}

func (f *fakeUserStore) RemoveToken(userID string, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, [2]string{userID, token})
	user := f.users[userID]
	if user == nil {
		return nil
	}
	kept := []string{}
	for _, tkn := range user.Tokens {
		if tkn != token {
			kept = append(kept, tkn)
		}
	}
	user.Tokens = kept
	return nil
}

func (f *fakeUserStore) tokensOf(id string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.users[id] == nil {
		return nil
	}
	return append([]string{}, f.users[id].Tokens...)
}

type fakeRelationshipStore struct {
	rels map[string]*dbmodels.Relationship
	err  error
}

func (f *fakeRelationshipStore) Get(id string) (*dbmodels.Relationship, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.rels[id], nil
}

type fakePush struct {
	mu         sync.Mutex
	messages   []*fcm.Message
	failTokens map[string]bool
	err        error
}

func (f *fakePush) Send(msg *fcm.Message) (*fcm.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.messages = append(f.messages, msg)
	resp := &fcm.Response{}
	for _, token := range msg.RegistrationIDs {
		if f.failTokens[token] {
			resp.Failure++
			resp.Results = append(resp.Results, fcm.Result{Error: errors.New("NotRegistered")})
		} else {
			resp.Success++
			resp.Results = append(resp.Results, fcm.Result{MessageID: "mid"})
		}
	}
	return resp, nil
}

type fakePlanStore struct {
	plans  []dbmodels.Plan
	marked map[uuid.UUID]time.Time
	err    error
}

func (f *fakePlanStore) DueForReminder(now time.Time) ([]dbmodels.Plan, error) {
	if f.err != nil {
		return nil, f.err
	}
	// Mirror the repo's window filter so sweep tests can hand in any
	// candidate set
	due := []dbmodels.Plan{}
	for _, p := range f.plans {
		if !p.ReminderEnabled || p.IsCompleted {
			continue
		}
		if p.Date.Before(now) || p.Date.After(now.Add(6*time.Hour)) {
			continue
		}
		due = append(due, p)
	}
	return due, nil
}

func (f *fakePlanStore) MarkReminderSent(id uuid.UUID, at time.Time) error {
	if f.marked == nil {
		f.marked = map[uuid.UUID]time.Time{}
	}
	f.marked[id] = at
	for i := range f.plans {
		if f.plans[i].ID == id {
			ts := at
			f.plans[i].ReminderLastSentAt = &ts
		}
	}
	return nil
}

type fakeSpecialDayStore struct {
	days   []dbmodels.SpecialDay
	marked int
}

func (f *fakeSpecialDayStore) All() ([]dbmodels.SpecialDay, error) {
	return f.days, nil
}

func (f *fakeSpecialDayStore) MarkReminded(id uuid.UUID, key string, at time.Time) error {
	f.marked++
	for i := range f.days {
		if f.days[i].ID == id {
			k := key
			ts := at
			f.days[i].LastReminderKey = &k
			f.days[i].LastReminderAt = &ts
		}
	}
	return nil
}

func newTestService() (*Service, *fakeRelationshipStore, *fakeUserStore, *fakePush) {
	users := newFakeUserStore()
	push := &fakePush{failTokens: map[string]bool{}}
	rels := &fakeRelationshipStore{rels: map[string]*dbmodels.Relationship{}}
	svc := &Service{
		Relationships: rels,
		Users:         users,
		Dispatcher:    &Dispatcher{Users: users, Push: push},
	}
	return svc, rels, users, push
}
