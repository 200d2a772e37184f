package user_test

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/studyhive/studyhive/internal/apperror"
	"github.com/studyhive/studyhive/internal/auth"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/storage"
	"github.com/studyhive/studyhive/internal/user"
)

type fakeRepo struct {
	users      map[string]*user.User
	failCreate bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]*user.User{}}
}

func (r *fakeRepo) Create(u *user.User) error {
	if r.failCreate {
		return errors.New("insert failed")
	}
	if _, ok := r.users[u.Email]; ok {
		return errors.New("duplicate key")
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeRepo) FindByEmail(email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeRepo) FindByID(id uuid.UUID) (*user.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeRepo) Update(u *user.User) error {
	for email, existing := range r.users {
		if existing.ID == u.ID {
			if email != u.Email {
				delete(r.users, email)
			}
			cp := *u
			r.users[u.Email] = &cp
			return nil
		}
	}
	return errors.New("not found")
}

type fakeFiles struct {
	saved   []string
	deleted []string
	n       int
}

func (f *fakeFiles) Save(category storage.Category, ownerID string, fh *multipart.FileHeader) (string, error) {
	f.n++
	path := fmt.Sprintf("%s/%s-%d", category, ownerID, f.n)
	f.saved = append(f.saved, path)
	return path, nil
}

func (f *fakeFiles) Delete(relPath string) error {
	f.deleted = append(f.deleted, relPath)
	return nil
}

// onDisk reports how many saved files were not deleted again.
func (f *fakeFiles) onDisk() int {
	remaining := 0
	for _, s := range f.saved {
		deleted := false
		for _, d := range f.deleted {
			if s == d {
				deleted = true
			}
		}
		if !deleted {
			remaining++
		}
	}
	return remaining
}

func testImage() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "avatar.png", Size: 128}
}

func setupAuth(t *testing.T) {
	t.Helper()
	config.C.JWTSecret = "user-service-test-secret"
	config.C.BcryptCost = 4
	auth.Init()
}

func validInput() user.RegisterInput {
	return user.RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "Sup3rSecret!"}
}

func TestRegister(t *testing.T) {
	setupAuth(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := newFakeRepo()
		svc := user.NewService(repo, &fakeFiles{})

		resp, err := svc.Register(ctx, validInput(), nil)
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token on successful registration")
		}
		if resp.User.Email != "alice@example.com" {
			t.Errorf("wrong email in response: %s", resp.User.Email)
		}

		stored, _ := repo.FindByEmail("alice@example.com")
		if stored == nil {
			t.Fatal("user was not persisted")
		}
		if stored.Password == "Sup3rSecret!" {
			t.Error("password stored as plaintext")
		}
		if !auth.CheckPassword(stored.Password, "Sup3rSecret!") {
			t.Error("stored hash does not verify the original password")
		}
		if auth.CheckPassword(stored.Password, "Sup3rSecret?") {
			t.Error("stored hash accepted a mutated password")
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		repo := newFakeRepo()
		svc := user.NewService(repo, &fakeFiles{})

		if _, err := svc.Register(ctx, validInput(), nil); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		_, err := svc.Register(ctx, validInput(), nil)
		if !errors.Is(err, apperror.ErrDuplicateEmail) {
			t.Errorf("expected ErrDuplicateEmail, got: %v", err)
		}
		if len(repo.users) != 1 {
			t.Errorf("expected exactly one user record, found %d", len(repo.users))
		}
	})

	t.Run("WeakPassword", func(t *testing.T) {
		svc := user.NewService(newFakeRepo(), &fakeFiles{})

		in := validInput()
		in.Password = "alllowercase"
		_, err := svc.Register(ctx, in, nil)
		if _, ok := apperror.AsValidation(err); !ok {
			t.Errorf("expected a ValidationError, got: %v", err)
		}
	})

	t.Run("CleanupAfterFailedInsert", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failCreate = true
		files := &fakeFiles{}
		svc := user.NewService(repo, files)

		_, err := svc.Register(ctx, validInput(), testImage())
		if err == nil {
			t.Fatal("Register should have failed")
		}
		if files.onDisk() != 0 {
			t.Errorf("accepted file must be removed on failure, %d left on disk", files.onDisk())
		}
	})
}

func TestLogin(t *testing.T) {
	setupAuth(t)
	ctx := context.Background()

	repo := newFakeRepo()
	svc := user.NewService(repo, &fakeFiles{})
	if _, err := svc.Register(ctx, validInput(), nil); err != nil {
		t.Fatalf("seed Register failed: %v", err)
	}

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Login(ctx, user.LoginInput{Email: "alice@example.com", Password: "Sup3rSecret!"})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if resp.Token == "" {
			t.Error("expected a token on login")
		}
	})

	t.Run("WrongPasswordAndUnknownEmailAreIdentical", func(t *testing.T) {
		_, errWrong := svc.Login(ctx, user.LoginInput{Email: "alice@example.com", Password: "WrongPass1!"})
		_, errUnknown := svc.Login(ctx, user.LoginInput{Email: "nobody@example.com", Password: "WrongPass1!"})

		if !errors.Is(errWrong, apperror.ErrInvalidCredentials) {
			t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
		}
		if !errors.Is(errUnknown, apperror.ErrInvalidCredentials) {
			t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
		}
		if errWrong.Error() != errUnknown.Error() {
			t.Errorf("error messages differ: %q vs %q", errWrong, errUnknown)
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	setupAuth(t)
	ctx := context.Background()

	seed := func(t *testing.T, files *fakeFiles) (user.UserService, *fakeRepo, string) {
		t.Helper()
		repo := newFakeRepo()
		svc := user.NewService(repo, files)
		resp, err := svc.Register(ctx, validInput(), testImage())
		if err != nil {
			t.Fatalf("seed Register failed: %v", err)
		}
		return svc, repo, resp.User.ID.String()
	}

	t.Run("CredentialsStripped", func(t *testing.T) {
		svc, repo, id := seed(t, &fakeFiles{})

		newEmail := "evil@example.com"
		newPassword := "Hijacked1!"
		newName := "Alice Cooper"
		_, err := svc.UpdateProfile(ctx, id, user.UpdateProfileInput{
			Name:     &newName,
			Email:    &newEmail,
			Password: &newPassword,
		}, nil)
		if err != nil {
			t.Fatalf("UpdateProfile failed: %v", err)
		}

		u, _ := repo.FindByEmail("alice@example.com")
		if u == nil {
			t.Fatal("email changed through the profile path")
		}
		if u.Name != "Alice Cooper" {
			t.Errorf("name not updated: %s", u.Name)
		}
		if !auth.CheckPassword(u.Password, "Sup3rSecret!") {
			t.Error("password changed through the profile path")
		}
	})

	t.Run("OldImageDeletedAfterReplacement", func(t *testing.T) {
		files := &fakeFiles{}
		svc, repo, id := seed(t, files)

		u, _ := repo.FindByEmail("alice@example.com")
		oldImage := u.ProfileImage

		_, err := svc.UpdateProfile(ctx, id, user.UpdateProfileInput{}, testImage())
		if err != nil {
			t.Fatalf("UpdateProfile failed: %v", err)
		}

		u, _ = repo.FindByEmail("alice@example.com")
		if u.ProfileImage == oldImage {
			t.Error("profile image was not replaced")
		}
		found := false
		for _, d := range files.deleted {
			if d == oldImage {
				found = true
			}
		}
		if !found {
			t.Errorf("old image %s was not deleted", oldImage)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, _, _ := seed(t, &fakeFiles{})
		_, err := svc.UpdateProfile(ctx, uuid.NewString(), user.UpdateProfileInput{}, nil)
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got: %v", err)
		}
	})
}

func TestChangePassword(t *testing.T) {
	setupAuth(t)
	ctx := context.Background()

	seed := func(t *testing.T) (user.UserService, string) {
		t.Helper()
		repo := newFakeRepo()
		svc := user.NewService(repo, &fakeFiles{})
		resp, err := svc.Register(ctx, validInput(), nil)
		if err != nil {
			t.Fatalf("seed Register failed: %v", err)
		}
		return svc, resp.User.ID.String()
	}

	t.Run("WrongOldPassword", func(t *testing.T) {
		svc, id := seed(t)
		err := svc.ChangePassword(ctx, id, user.ChangePasswordInput{OldPassword: "Nope1234!", NewPassword: "NewPass1!"})
		if !errors.Is(err, apperror.ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("TooShortNewPassword", func(t *testing.T) {
		svc, id := seed(t)
		err := svc.ChangePassword(ctx, id, user.ChangePasswordInput{OldPassword: "Sup3rSecret!", NewPassword: "five5"})
		if _, ok := apperror.AsValidation(err); !ok {
			t.Errorf("expected a ValidationError for a 5-char password, got: %v", err)
		}
	})

	t.Run("SuccessRotatesCredential", func(t *testing.T) {
		svc, id := seed(t)
		if err := svc.ChangePassword(ctx, id, user.ChangePasswordInput{OldPassword: "Sup3rSecret!", NewPassword: "newone"}); err != nil {
			t.Fatalf("ChangePassword failed: %v", err)
		}

		if _, err := svc.Login(ctx, user.LoginInput{Email: "alice@example.com", Password: "Sup3rSecret!"}); !errors.Is(err, apperror.ErrInvalidCredentials) {
			t.Errorf("old password should no longer log in, got: %v", err)
		}
		if _, err := svc.Login(ctx, user.LoginInput{Email: "alice@example.com", Password: "newone"}); err != nil {
			t.Errorf("new password should log in, got: %v", err)
		}
	})
}
