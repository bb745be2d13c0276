package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/avolkov18/event-management-backend/config"
)

type fakeUserRepo struct {
	nextID uint
	users  map[uint]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[uint]*User)}
}

func (f *fakeUserRepo) Create(user *User) error {
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(userID uint) (User, error) {
	u, ok := f.users[userID]
	if !ok {
		return User{}, gorm.ErrRecordNotFound
	}
	return *u, nil
}

func (f *fakeUserRepo) FindByUsername(username string) (*User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) UsernameExists(username string) (bool, error) {
	_, err := f.FindByUsername(username)
	return err == nil, nil
}

func (f *fakeUserRepo) EmailExists(email string) (bool, error) {
	_, err := f.FindByEmail(email)
	return err == nil, nil
}

func (f *fakeUserRepo) Update(user *User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func newAuthService(repo Repository) Service {
	return NewService(repo, &config.Config{
		JWTAccessSecret:    "access-secret",
		JWTRefreshSecret:   "refresh-secret",
		JWTAccessTTLHours:  1,
		JWTRefreshTTLHours: 24,
	})
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "s3cretpw",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{name: "valid", mutate: func(in *RegisterInput) {}},
		{
			name:    "missing username",
			mutate:  func(in *RegisterInput) { in.Username = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing email",
			mutate:  func(in *RegisterInput) { in.Email = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "missing first name",
			mutate:  func(in *RegisterInput) { in.FirstName = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "seven char password",
			mutate:  func(in *RegisterInput) { in.Password = "short07" },
			wantErr: ErrPasswordTooShort,
		},
		{
			name:   "eight char password",
			mutate: func(in *RegisterInput) { in.Password = "short008" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := newAuthService(repo)

			in := validRegisterInput()
			tt.mutate(&in)

			u, err := svc.Register(in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Empty(t, repo.users)
				return
			}
			require.NoError(t, err)
			require.NotZero(t, u.ID)

			// stored hashed, never plain
			require.NotEqual(t, in.Password, u.PasswordHash)
			require.NoError(t, bcrypt.CompareHashAndPassword(
				[]byte(u.PasswordHash), []byte(in.Password)))
		})
	}
}

func TestRegisterDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(validRegisterInput())
	require.NoError(t, err)

	again := validRegisterInput()
	again.Email = "other@example.com"
	_, err = svc.Register(again)
	require.ErrorIs(t, err, ErrUsernameTaken)

	again = validRegisterInput()
	again.Username = "bob"
	_, err = svc.Register(again)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(validRegisterInput())
	require.NoError(t, err)

	pair, user, err := svc.Login(LoginInput{Username: "alice", Password: "s3cretpw"})
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	_, _, err = svc.Login(LoginInput{Username: "alice", Password: "wrong-pw"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown user reports the same error as a bad password
	_, _, err = svc.Login(LoginInput{Username: "nobody", Password: "s3cretpw"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	_, err := svc.Register(validRegisterInput())
	require.NoError(t, err)

	pair, _, err := svc.Login(LoginInput{Username: "alice", Password: "s3cretpw"})
	require.NoError(t, err)

	access, err := svc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, access)

	_, err = svc.Refresh("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)

	// an access token is signed with the other secret and must not pass
	_, err = svc.Refresh(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// A validly signed token whose user_id claim is not numeric must be
// rejected, not panic on the claim read.
func TestRefreshMalformedUserIDClaim(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newAuthService(repo)

	for _, userID := range []interface{}{"1", nil, true} {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": userID,
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte("refresh-secret"))
		require.NoError(t, err)

		_, err = svc.Refresh(signed)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}
