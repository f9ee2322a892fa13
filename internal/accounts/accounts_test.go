// Marquee - Movie Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package accounts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/marquee/internal/events"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
	"github.com/tomtom215/marquee/internal/store/badgerstore"
	"github.com/tomtom215/marquee/internal/validation"
)

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
	data  []interface{}
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
	p.data = append(p.data, data)
	return nil
}

func (p *recordingPublisher) last() (string, interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.types) == 0 {
		return "", nil
	}
	return p.types[len(p.types)-1], p.data[len(p.data)-1]
}

func newService(t *testing.T) (*Service, *badgerstore.Store, *recordingPublisher) {
	t.Helper()
	st, err := badgerstore.Open(badgerstore.Options{InMemory: true})
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	pub := &recordingPublisher{}
	svc, err := NewService(st, Options{BcryptCost: bcrypt.MinCost, Events: pub})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, st, pub
}

func signup(t *testing.T, svc *Service, username string) *models.User {
	t.Helper()
	u, err := svc.Signup(context.Background(), SignupInput{
		Name:     "Test " + username,
		Username: username,
		Email:    username + "@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("Signup(%s): %v", username, err)
	}
	return u
}

func strp(s string) *string { return &s }

func TestSignupHashesPassword(t *testing.T) {
	t.Parallel()
	svc, st, pub := newService(t)
	ctx := context.Background()

	u := signup(t, svc, "alice")
	if u.ID.IsZero() {
		t.Fatal("expected an assigned id")
	}

	stored, err := st.FindUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindUserByUsername: %v", err)
	}
	if stored.Password == "secret" {
		t.Fatal("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret")); err != nil {
		t.Errorf("stored hash does not match: %v", err)
	}

	body, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["password"]; ok {
		t.Error("password present in JSON")
	}
	if typ, _ := pub.last(); typ != events.TypeUserSignedUp {
		t.Errorf("last event = %q, want %q", typ, events.TypeUserSignedUp)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)
	signup(t, svc, "alice")

	_, err := svc.Signup(context.Background(), SignupInput{
		Name: "Other", Username: "alice", Email: "o@example.com", Password: "pw",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	tests := []struct {
		name  string
		in    SignupInput
		field string
	}{
		{"missing name", SignupInput{Username: "u", Email: "e", Password: "p"}, "name"},
		{"blank username", SignupInput{Name: "n", Username: "  ", Email: "e", Password: "p"}, "username"},
		{"missing email", SignupInput{Name: "n", Username: "u", Password: "p"}, "email"},
		{"missing password", SignupInput{Name: "n", Username: "u", Email: "e"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.in)
			var verr *validation.RequestValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want validation error", err)
			}
			if !verr.Has(tt.field) {
				t.Errorf("validation error %v does not mention %s", verr, tt.field)
			}
		})
	}
}

func TestConcurrentSignupSameUsername(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Signup(context.Background(), SignupInput{
				Name: fmt.Sprintf("n%d", i), Username: "race", Email: "e", Password: "p",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case !errors.Is(err, ErrUsernameTaken):
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("successful signups = %d, want 1", ok)
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)
	signup(t, svc, "alice")
	ctx := context.Background()

	u, err := svc.Login(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if u.Username != "alice" || u.Favorites == nil {
		t.Errorf("unexpected user %+v", u)
	}

	_, wrongPassword := svc.Login(ctx, "alice", "nope")
	_, unknownUser := svc.Login(ctx, "bob", "secret")
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownUser, ErrInvalidCredentials) {
		t.Fatalf("wrong password = %v, unknown user = %v", wrongPassword, unknownUser)
	}
	if wrongPassword.Error() != unknownUser.Error() {
		t.Error("login failures must be indistinguishable")
	}
}

func TestGetUserByIDOrUsername(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)
	u := signup(t, svc, "alice")
	ctx := context.Background()

	for _, ident := range []string{u.ID.Hex(), "alice"} {
		got, err := svc.GetUser(ctx, ident)
		if err != nil {
			t.Fatalf("GetUser(%s): %v", ident, err)
		}
		if got.ID != u.ID {
			t.Errorf("GetUser(%s) = %s, want %s", ident, got.ID.Hex(), u.ID.Hex())
		}
	}
	if _, err := svc.GetUser(ctx, "nobody"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()
	svc, st, _ := newService(t)
	u := signup(t, svc, "alice")
	signup(t, svc, "bob")
	ctx := context.Background()

	got, err := svc.UpdateProfile(ctx, u.ID.Hex(), ProfilePatch{
		Name:     strp("Alice A."),
		Phone:    strp("555"),
		Password: strp("   "),
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if got.Name != "Alice A." || got.Phone != "555" || got.Email != "alice@example.com" {
		t.Errorf("unexpected profile %+v", got)
	}
	if _, err := svc.Login(ctx, "alice", "secret"); err != nil {
		t.Errorf("blank password should be ignored: %v", err)
	}

	if _, err := svc.UpdateProfile(ctx, "alice", ProfilePatch{Username: strp("bob")}); !errors.Is(err, ErrUsernameConflict) {
		t.Errorf("err = %v, want ErrUsernameConflict", err)
	}

	if _, err := svc.UpdateProfile(ctx, "alice", ProfilePatch{Username: strp("alicia"), Password: strp("new")}); err != nil {
		t.Fatalf("rename: %v", err)
	}
	if _, err := st.FindUserByUsername(ctx, "alice"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("old username still resolves: %v", err)
	}
	if _, err := svc.Login(ctx, "alicia", "new"); err != nil {
		t.Errorf("login with new credentials: %v", err)
	}
}

func TestUpdateProfileRejectsBlankFields(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)
	signup(t, svc, "alice")

	_, err := svc.UpdateProfile(context.Background(), "alice", ProfilePatch{Email: strp(" ")})
	var verr *validation.RequestValidationError
	if !errors.As(err, &verr) || !verr.Has("email") {
		t.Fatalf("err = %v, want validation error on email", err)
	}
}

func TestUpdateProfileUnknownUser(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)

	_, err := svc.UpdateProfile(context.Background(), "ghost", ProfilePatch{Name: strp("x")})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()
	svc, _, pub := newService(t)
	signup(t, svc, "alice")
	ctx := context.Background()

	a := models.MovieRef{ID: "1", Name: "A"}
	b := models.MovieRef{ID: "2", Name: "B"}

	if _, err := svc.ToggleFavorite(ctx, "alice", a, false); err != nil {
		t.Fatal(err)
	}
	list, err := svc.ToggleFavorite(ctx, "alice", b, false)
	if err != nil {
		t.Fatal(err)
	}
	list, err = svc.ToggleFavorite(ctx, "alice", a, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].ID != "2" || list[1].ID != "1" {
		t.Fatalf("favorites = %+v, want [2 1]", list)
	}

	list, err = svc.ToggleFavorite(ctx, "alice", models.MovieRef{ID: "1"}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != "2" {
		t.Fatalf("favorites after remove = %+v", list)
	}

	typ, data := pub.last()
	if typ != events.TypeFavoritesChanged {
		t.Errorf("event = %q", typ)
	}
	if lc, ok := data.(events.ListChanged); !ok || !lc.Removed || lc.Size != 1 {
		t.Errorf("payload = %+v", data)
	}

	stored, err := svc.Favorites(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Errorf("persisted favorites = %+v", stored)
	}
}

func TestListErrors(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)
	signup(t, svc, "alice")
	ctx := context.Background()

	if _, err := svc.ToggleFavorite(ctx, "alice", models.MovieRef{}, false); !errors.Is(err, ErrMovieRefRequired) {
		t.Errorf("empty id: %v", err)
	}
	if _, err := svc.PushRecentlyViewed(ctx, "alice", models.MovieRef{ID: " "}); !errors.Is(err, ErrMovieRefRequired) {
		t.Errorf("blank id: %v", err)
	}
	if _, err := svc.Favorites(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown user: %v", err)
	}
	if _, err := svc.RecentlyViewed(ctx, "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("unknown user: %v", err)
	}
}

func TestRecentlyViewedIsCappedAndDeduplicated(t *testing.T) {
	t.Parallel()
	svc, _, _ := newService(t)
	signup(t, svc, "alice")
	ctx := context.Background()

	for i := 0; i < models.RecentlyViewedLimit+5; i++ {
		if _, err := svc.PushRecentlyViewed(ctx, "alice", models.MovieRef{ID: fmt.Sprint(i)}); err != nil {
			t.Fatal(err)
		}
	}
	list, err := svc.PushRecentlyViewed(ctx, "alice", models.MovieRef{ID: "10"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != models.RecentlyViewedLimit {
		t.Fatalf("len = %d, want %d", len(list), models.RecentlyViewedLimit)
	}
	if list[0].ID != "10" {
		t.Errorf("front = %s, want 10", list[0].ID)
	}
	seen := map[string]bool{}
	for _, m := range list {
		if seen[m.ID] {
			t.Errorf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
	}

	stored, err := svc.RecentlyViewed(ctx, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != len(list) || stored[0].ID != "10" {
		t.Errorf("persisted list = %+v", stored)
	}
}
