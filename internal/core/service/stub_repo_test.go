package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

// stubAccountRepo is an in-memory AccountRepository keyed by profile id. It
// mirrors the store's contract: case-insensitive username uniqueness,
// not-found sentinels, idempotent delete.
type stubAccountRepo struct {
	entries       map[int64]*domain.DirectoryEntry
	nextAccountID int64
	nextProfileID int64
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{entries: make(map[int64]*domain.DirectoryEntry)}
}

func cloneEntry(e *domain.DirectoryEntry) *domain.DirectoryEntry {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubAccountRepo) usernameTaken(username string, excludeAccountID int64) bool {
	for _, e := range r.entries {
		if e.Account.ID != excludeAccountID && strings.EqualFold(e.Account.Username, username) {
			return true
		}
	}
	return false
}

func (r *stubAccountRepo) CreateWithProfile(_ context.Context, account *domain.Account, profile *domain.Profile) (*domain.Account, error) {
	if r.usernameTaken(account.Username, 0) {
		return nil, domain.ErrUsernameTaken
	}
	r.nextAccountID++
	r.nextProfileID++
	acc := *account
	acc.ID = r.nextAccountID
	prof := *profile
	prof.ID = r.nextProfileID
	prof.AccountID = acc.ID
	r.entries[prof.ID] = &domain.DirectoryEntry{Account: acc, Profile: prof}
	out := acc
	return &out, nil
}

func (r *stubAccountRepo) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, e := range r.entries {
		if strings.EqualFold(e.Account.Username, username) {
			acc := e.Account
			return &acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	for _, e := range r.entries {
		if e.Account.ID == id {
			acc := e.Account
			return &acc, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) IsAdmin(ctx context.Context, id int64) (bool, error) {
	acc, err := r.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	return acc.IsAdmin, nil
}

func (r *stubAccountRepo) Search(_ context.Context, term string) ([]*domain.DirectoryEntry, error) {
	ids := make([]int64, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var out []*domain.DirectoryEntry
	needle := strings.ToLower(term)
	numericID, numErr := strconv.ParseInt(term, 10, 64)
	for _, id := range ids {
		e := r.entries[id]
		if term == "" || matchesTerm(e, needle) || (numErr == nil && e.Account.ID == numericID) {
			out = append(out, cloneEntry(e))
		}
	}
	return out, nil
}

func matchesTerm(e *domain.DirectoryEntry, needle string) bool {
	for _, field := range []string{
		e.Account.Username, e.Profile.FirstName, e.Profile.LastName,
		e.Profile.City, e.Profile.State, e.Profile.Country,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (r *stubAccountRepo) FindByProfileID(_ context.Context, profileID int64) (*domain.DirectoryEntry, error) {
	e, ok := r.entries[profileID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneEntry(e), nil
}

func (r *stubAccountRepo) FindByAccountID(_ context.Context, accountID int64) (*domain.DirectoryEntry, error) {
	for _, e := range r.entries {
		if e.Account.ID == accountID {
			return cloneEntry(e), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) Update(_ context.Context, params ports.UpdateAccountParams) error {
	e, ok := r.entries[params.ProfileID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if r.usernameTaken(params.Username, e.Account.ID) {
		return domain.ErrUsernameTaken
	}
	e.Account.Username = params.Username
	e.Account.IsAdmin = params.IsAdmin
	if params.PasswordHash != "" {
		e.Account.PasswordHash = params.PasswordHash
	}
	prof := params.Profile
	prof.ID = e.Profile.ID
	prof.AccountID = e.Profile.AccountID
	e.Profile = prof
	return nil
}

func (r *stubAccountRepo) UpdateProfileByAccountID(_ context.Context, accountID int64, profile domain.Profile) error {
	for _, e := range r.entries {
		if e.Account.ID == accountID {
			profile.ID = e.Profile.ID
			profile.AccountID = accountID
			e.Profile = profile
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) DeleteByProfileID(_ context.Context, profileID int64) error {
	delete(r.entries, profileID)
	return nil
}

// stubArticleRepo is an in-memory ArticleRepository preserving insertion
// order.
type stubArticleRepo struct {
	articles []*domain.SavedArticle
	nextID   int64
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{}
}

func (r *stubArticleRepo) Save(_ context.Context, article *domain.SavedArticle) error {
	for _, a := range r.articles {
		if a.AccountID == article.AccountID && a.URL == article.URL {
			return domain.ErrArticleAlreadySaved
		}
	}
	r.nextID++
	stored := *article
	stored.ID = r.nextID
	r.articles = append(r.articles, &stored)
	return nil
}

func (r *stubArticleRepo) Exists(_ context.Context, accountID int64, url string) (bool, error) {
	for _, a := range r.articles {
		if a.AccountID == accountID && a.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubArticleRepo) Delete(_ context.Context, accountID int64, url string) error {
	for i, a := range r.articles {
		if a.AccountID == accountID && a.URL == url {
			r.articles = append(r.articles[:i], r.articles[i+1:]...)
			return nil
		}
	}
	return domain.ErrArticleNotFound
}

func (r *stubArticleRepo) ListByAccount(_ context.Context, accountID int64) ([]*domain.SavedArticle, error) {
	var out []*domain.SavedArticle
	for _, a := range r.articles {
		if a.AccountID == accountID {
			copy := *a
			out = append(out, &copy)
		}
	}
	return out, nil
}
