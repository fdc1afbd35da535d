package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/hackathon-platform/cache"
	"github.com/Dosada05/hackathon-platform/judging"
	"github.com/Dosada05/hackathon-platform/models"
	"github.com/Dosada05/hackathon-platform/realtime"
	"github.com/Dosada05/hackathon-platform/repositories"
	"github.com/Dosada05/hackathon-platform/storage"
)

// Documents are stored as JSON so callers never share memory with the store,
// the same way the postgres repositories behave.

type storedDoc struct {
	data    []byte
	version int
}

func clone[T any](v *T) *T {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

type fakeHackathonRepo struct {
	mu    sync.Mutex
	docs  map[string]storedDoc
	slugs map[string]bool
	// beforeUpdate runs inside UpdateIfVersion before the version check.
	beforeUpdate func(id string)
	updates      int
}

func newFakeHackathonRepo() *fakeHackathonRepo {
	return &fakeHackathonRepo{docs: map[string]storedDoc{}, slugs: map[string]bool{}}
}

func (r *fakeHackathonRepo) put(h *models.Hackathon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, _ := json.Marshal(h)
	r.docs[h.ID] = storedDoc{data: data, version: 1}
	r.slugs[h.Slug] = true
	h.Version = 1
}

func (r *fakeHackathonRepo) Create(_ context.Context, h *models.Hackathon) error {
	r.mu.Lock()
	if r.slugs[h.Slug] {
		r.mu.Unlock()
		return repositories.ErrHackathonSlugConflict
	}
	r.mu.Unlock()
	r.put(h)
	return nil
}

func (r *fakeHackathonRepo) GetByID(_ context.Context, id string) (*models.Hackathon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrHackathonNotFound
	}
	var h models.Hackathon
	if err := json.Unmarshal(d.data, &h); err != nil {
		return nil, err
	}
	h.Version = d.version
	return &h, nil
}

func (r *fakeHackathonRepo) GetBySlug(ctx context.Context, slug string) (*models.Hackathon, error) {
	r.mu.Lock()
	var id string
	for k, d := range r.docs {
		var h models.Hackathon
		_ = json.Unmarshal(d.data, &h)
		if h.Slug == slug {
			id = k
		}
	}
	r.mu.Unlock()
	if id == "" {
		return nil, repositories.ErrHackathonNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *fakeHackathonRepo) List(ctx context.Context, filter repositories.HackathonFilter) ([]*models.Hackathon, error) {
	r.mu.Lock()
	ids := make([]string, 0, len(r.docs))
	for id := range r.docs {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	slices.Sort(ids)

	var out []*models.Hackathon
	for _, id := range ids {
		h, _ := r.GetByID(ctx, id)
		if filter.Status != "" && h.Status != filter.Status {
			continue
		}
		if filter.PublishedOnly && h.Status == models.HackathonDraft {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *fakeHackathonRepo) UpdateIfVersion(_ context.Context, h *models.Hackathon) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate(h.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[h.ID]
	if !ok {
		return repositories.ErrHackathonNotFound
	}
	if d.version != h.Version {
		return repositories.ErrVersionConflict
	}
	data, _ := json.Marshal(h)
	r.docs[h.ID] = storedDoc{data: data, version: d.version + 1}
	h.Version = d.version + 1
	r.updates++
	return nil
}

func (r *fakeHackathonRepo) UniqueSlug(_ context.Context, base string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	slug := base
	for i := 1; r.slugs[slug]; i++ {
		slug = base + "-" + string(rune('0'+i))
	}
	return slug, nil
}

type fakeTeamRepo struct {
	mu           sync.Mutex
	docs         map[string]storedDoc
	order        []string
	beforeUpdate func(id string)
	updates      int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{docs: map[string]storedDoc{}}
}

func (r *fakeTeamRepo) Create(_ context.Context, t *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		var other models.Team
		_ = json.Unmarshal(d.data, &other)
		if other.Slug == t.Slug {
			return repositories.ErrTeamSlugConflict
		}
	}
	data, _ := json.Marshal(t)
	r.docs[t.ID] = storedDoc{data: data, version: 1}
	r.order = append(r.order, t.ID)
	t.Version = 1
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.get(id)
}

func (r *fakeTeamRepo) get(id string) (*models.Team, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	var t models.Team
	if err := json.Unmarshal(d.data, &t); err != nil {
		return nil, err
	}
	t.Version = d.version
	return &t, nil
}

func (r *fakeTeamRepo) all() []*models.Team {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Team, 0, len(r.order))
	for _, id := range r.order {
		t, _ := r.get(id)
		out = append(out, t)
	}
	return out
}

func (r *fakeTeamRepo) ListByHackathon(_ context.Context, hackathonID string) ([]*models.Team, error) {
	var out []*models.Team
	for _, t := range r.all() {
		if t.HackathonID == hackathonID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) FindByMember(_ context.Context, hackathonID, userID string) (*models.Team, error) {
	for _, t := range r.all() {
		if t.HackathonID == hackathonID && t.Status != models.TeamWithdrawn && t.IsMember(userID) {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListByMember(_ context.Context, userID string) ([]*models.Team, error) {
	var out []*models.Team
	for _, t := range r.all() {
		if t.IsMember(userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) FindByInvitationToken(_ context.Context, token string) (*models.Team, error) {
	for _, t := range r.all() {
		if t.InvitationByToken(token) != nil {
			return t, nil
		}
	}
	return nil, repositories.ErrTeamNotFound
}

func (r *fakeTeamRepo) ListInvitedTeams(_ context.Context, userID, email string) ([]*models.Team, error) {
	var out []*models.Team
	for _, t := range r.all() {
		for _, inv := range t.Invitations {
			if inv.Status == models.InvitationPending &&
				(inv.InviteeID == userID || strings.EqualFold(inv.InviteeEmail, email)) {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) UpdateIfVersion(_ context.Context, t *models.Team) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate(t.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[t.ID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	if d.version != t.Version {
		return repositories.ErrVersionConflict
	}
	data, _ := json.Marshal(t)
	r.docs[t.ID] = storedDoc{data: data, version: d.version + 1}
	t.Version = d.version + 1
	r.updates++
	return nil
}

func (r *fakeTeamRepo) UniqueSlug(_ context.Context, base string) (string, error) {
	taken := map[string]bool{}
	for _, t := range r.all() {
		taken[t.Slug] = true
	}
	slug := base
	for i := 1; taken[slug]; i++ {
		slug = base + "-" + string(rune('0'+i))
	}
	return slug, nil
}

// touch rewrites a stored team through fn and bumps its version, simulating a
// concurrent writer.
func (r *fakeTeamRepo) touch(id string, fn func(t *models.Team)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(id)
	if err != nil {
		panic(err)
	}
	fn(t)
	data, _ := json.Marshal(t)
	r.docs[id] = storedDoc{data: data, version: r.docs[id].version + 1}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
		if existing.Username == u.Username {
			return repositories.ErrUserUsernameConflict
		}
	}
	r.users[u.ID] = clone(u)
	r.users[u.ID].PasswordHash = u.PasswordHash
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ListByIDs(_ context.Context, ids []string) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			c := *u
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *fakeUserRepo) AddXP(_ context.Context, id string, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, repositories.ErrUserNotFound
	}
	u.XP += delta
	return u.XP, nil
}

type fakeOrgRepo struct {
	orgs map[string]*models.Organization
}

func (r *fakeOrgRepo) Create(_ context.Context, org *models.Organization) error {
	if r.orgs == nil {
		r.orgs = map[string]*models.Organization{}
	}
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeOrgRepo) GetByID(_ context.Context, id string) (*models.Organization, error) {
	org, ok := r.orgs[id]
	if !ok {
		return nil, repositories.ErrOrganizationNotFound
	}
	c := *org
	return &c, nil
}

func (r *fakeOrgRepo) UpdateMembers(_ context.Context, org *models.Organization) error {
	if _, ok := r.orgs[org.ID]; !ok {
		return repositories.ErrOrganizationNotFound
	}
	r.orgs[org.ID] = org
	return nil
}

func (r *fakeOrgRepo) UniqueSlug(_ context.Context, base string) (string, error) {
	return base, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []realtime.Event
}

func (p *recordingPublisher) Publish(_ string, e realtime.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type recordingMailer struct {
	sent []TeamInvitationEmail
	err  error
}

func (m *recordingMailer) SendTeamInvitation(_ context.Context, msg TeamInvitationEmail) error {
	m.sent = append(m.sent, msg)
	return m.err
}

type memoryLeaderboard struct {
	data        map[string][]judging.Standing
	invalidated int
}

func (c *memoryLeaderboard) Get(_ context.Context, id string) ([]judging.Standing, error) {
	s, ok := c.data[id]
	if !ok {
		return nil, cache.ErrMiss
	}
	return s, nil
}

func (c *memoryLeaderboard) Set(_ context.Context, id string, s []judging.Standing) error {
	if c.data == nil {
		c.data = map[string][]judging.Standing{}
	}
	c.data[id] = s
	return nil
}

func (c *memoryLeaderboard) Invalidate(_ context.Context, id string) error {
	delete(c.data, id)
	c.invalidated++
	return nil
}

type memoryUploader struct {
	objects map[string]string
}

func (u *memoryUploader) Upload(_ context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if u.objects == nil {
		u.objects = map[string]string{}
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	u.objects[key] = string(data)
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memoryUploader) Delete(_ context.Context, key string) error {
	delete(u.objects, key)
	return nil
}

func (u *memoryUploader) GetPublicURL(key string) string {
	return "https://cdn.test/" + key
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
