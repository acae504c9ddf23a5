package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/linkhubhq/linkhub/internal/apperror"
	"github.com/linkhubhq/linkhub/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. Each stores
// copies, never the caller's pointers, so tests can't interfere with the
// mock's state through shared memory.

type mockUserRepo struct {
	users  map[string]*model.User
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return apperror.NotFound("user", user.ID)
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

type mockLinkRepo struct {
	links  map[int64]*model.Link
	nextID int64
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{links: make(map[int64]*model.Link)}
}

func (m *mockLinkRepo) Create(_ context.Context, link *model.Link) error {
	m.nextID++
	link.ID = m.nextID
	stored := *link
	m.links[link.ID] = &stored
	return nil
}

func (m *mockLinkRepo) GetByID(_ context.Context, id int64) (*model.Link, error) {
	link, ok := m.links[id]
	if !ok {
		return nil, apperror.NotFound("link", strconv.FormatInt(id, 10))
	}
	result := *link
	return &result, nil
}

func (m *mockLinkRepo) ListByUser(_ context.Context, userID string) ([]model.Link, error) {
	result := []model.Link{}
	for _, l := range m.links {
		if l.UserID == userID {
			result = append(result, *l)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Position != result[j].Position {
			return result[i].Position < result[j].Position
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *mockLinkRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	links, _ := m.ListByUser(ctx, userID)
	return len(links), nil
}

func (m *mockLinkRepo) Update(_ context.Context, link *model.Link) error {
	if _, ok := m.links[link.ID]; !ok {
		return apperror.NotFound("link", strconv.FormatInt(link.ID, 10))
	}
	stored := *link
	m.links[link.ID] = &stored
	return nil
}

func (m *mockLinkRepo) Delete(ctx context.Context, id int64) error {
	link, ok := m.links[id]
	if !ok {
		return apperror.NotFound("link", strconv.FormatInt(id, 10))
	}
	userID := link.UserID
	delete(m.links, id)

	remaining, _ := m.ListByUser(ctx, userID)
	for pos, l := range remaining {
		m.links[l.ID].Position = pos
	}
	return nil
}

func (m *mockLinkRepo) IncrementClicks(_ context.Context, id int64) error {
	link, ok := m.links[id]
	if !ok {
		return apperror.NotFound("link", strconv.FormatInt(id, 10))
	}
	link.Clicks++
	return nil
}

func (m *mockLinkRepo) Reorder(_ context.Context, userID string, orderedIDs []int64) error {
	for pos, id := range orderedIDs {
		link, ok := m.links[id]
		if !ok || link.UserID != userID {
			return apperror.NotFound("link", strconv.FormatInt(id, 10))
		}
		link.Position = pos
	}
	return nil
}

func (m *mockLinkRepo) SumClicksByUser(_ context.Context, userID string) (int64, error) {
	var total int64
	for _, l := range m.links {
		if l.UserID == userID {
			total += l.Clicks
		}
	}
	return total, nil
}

type mockThemeRepo struct {
	themes map[string]*model.Theme
}

func newMockThemeRepo() *mockThemeRepo {
	return &mockThemeRepo{themes: make(map[string]*model.Theme)}
}

func (m *mockThemeRepo) GetByUser(_ context.Context, userID string) (*model.Theme, error) {
	theme, ok := m.themes[userID]
	if !ok {
		return nil, apperror.NotFound("theme", userID)
	}
	result := *theme
	return &result, nil
}

func (m *mockThemeRepo) Upsert(_ context.Context, theme *model.Theme) error {
	stored := *theme
	m.themes[theme.UserID] = &stored
	return nil
}

type mockPageViewRepo struct {
	views []model.PageView
	// capturedLimit records the last limit passed to ListByUser, so tests
	// can assert on clamping.
	capturedLimit int
}

func newMockPageViewRepo() *mockPageViewRepo {
	return &mockPageViewRepo{}
}

func (m *mockPageViewRepo) Create(_ context.Context, view *model.PageView) error {
	view.ID = int64(len(m.views) + 1)
	m.views = append(m.views, *view)
	return nil
}

func (m *mockPageViewRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, v := range m.views {
		if v.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (m *mockPageViewRepo) ListByUser(_ context.Context, userID string, limit int) ([]model.PageView, error) {
	m.capturedLimit = limit
	result := []model.PageView{}
	// Stored oldest-first; return newest-first.
	for i := len(m.views) - 1; i >= 0 && len(result) < limit; i-- {
		if m.views[i].UserID == userID {
			result = append(result, m.views[i])
		}
	}
	return result, nil
}

type mockContactRepo struct {
	submissions []model.ContactSubmission
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{}
}

func (m *mockContactRepo) Create(_ context.Context, submission *model.ContactSubmission) error {
	submission.ID = int64(len(m.submissions) + 1)
	submission.Status = model.ContactStatusNew
	m.submissions = append(m.submissions, *submission)
	return nil
}

func (m *mockContactRepo) List(_ context.Context) ([]model.ContactSubmission, error) {
	// Newest-first.
	result := make([]model.ContactSubmission, 0, len(m.submissions))
	for i := len(m.submissions) - 1; i >= 0; i-- {
		result = append(result, m.submissions[i])
	}
	return result, nil
}
