package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/surlink/internal/client/models"
	"github.com/dmitrijs2005/surlink/internal/client/repositories/records"
	"github.com/dmitrijs2005/surlink/internal/common"
	"github.com/dmitrijs2005/surlink/internal/cryptox"
	"github.com/dmitrijs2005/surlink/internal/logging"
)

const sessionKeySize = 32

// AuthService manages local accounts and the login session.
//
// Contract:
//   - Register: create an account; passwords are kept only as an argon2id verifier.
//   - Login: verify credentials and store a signed session token.
//   - Current: resolve the session token to its account.
//   - Logout: drop the session.
//   - SetProfilePicture: attach an image to the logged-in account.
type AuthService interface {
	Register(ctx context.Context, email, password, picturePath string) (*models.UserAccount, error)
	Login(ctx context.Context, email, password string) (*models.UserAccount, error)
	Current(ctx context.Context) (*models.UserAccount, error)
	Logout(ctx context.Context) error
	SetProfilePicture(ctx context.Context, path string) (*models.UserAccount, error)
}

type authService struct {
	store      records.Store
	avatars    AvatarStore
	log        logging.Logger
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(store records.Store, avatars AvatarStore, log logging.Logger, sessionTTL time.Duration) AuthService {
	if avatars == nil {
		avatars = InlineAvatarStore{}
	}
	return &authService{
		store:      store,
		avatars:    avatars,
		log:        log,
		sessionTTL: sessionTTL,
		now:        time.Now,
	}
}

// decodeAccount treats malformed records as absent.
func decodeAccount(raw []byte) *models.UserAccount {
	if len(raw) == 0 {
		return nil
	}
	var u models.UserAccount
	if err := json.Unmarshal(raw, &u); err != nil || u.Email == "" {
		return nil
	}
	return &u
}

func putAccount(ctx context.Context, repo records.Repository, u *models.UserAccount) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return repo.Put(ctx, common.UserKey(u.Email), data)
}

// findAccount loads the per-email record, falling back to the legacy shared
// slot when it belongs to the same email.
func findAccount(ctx context.Context, repo records.Repository, email string) (*models.UserAccount, error) {
	raw, err := repo.Get(ctx, common.UserKey(email))
	if err != nil {
		return nil, err
	}
	if u := decodeAccount(raw); u != nil && u.Email == email {
		return u, nil
	}

	raw, err = repo.Get(ctx, common.LegacyUserKey)
	if err != nil {
		return nil, err
	}
	if u := decodeAccount(raw); u != nil && u.Email == email {
		return u, nil
	}
	return nil, nil
}

// missingCredentials is shared by Register and Login. A password is kept
// verbatim, so only an empty one counts as missing.
func missingCredentials(email, password string) bool {
	return email == "" || password == ""
}

func (a *authService) Register(ctx context.Context, email, password, picturePath string) (*models.UserAccount, error) {
	email = strings.TrimSpace(email)
	if missingCredentials(email, password) {
		return nil, ErrMissingFields
	}

	// Checked before the picture upload and again inside the transaction.
	existing, err := findAccount(ctx, a.store, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	var picture string
	if picturePath != "" {
		img, err := LoadImage(picturePath, MaxProfilePictureSize)
		if err != nil {
			return nil, err
		}
		if picture, err = a.avatars.Save(ctx, email, img); err != nil {
			return nil, fmt.Errorf("profile picture: %w", err)
		}
	}

	salt, verifier := cryptox.NewVerifier([]byte(password))
	user := &models.UserAccount{
		Email:          email,
		Salt:           salt,
		Verifier:       verifier,
		ProfilePicture: picture,
		CreatedAt:      a.now().UTC(),
	}

	err = a.store.InTx(ctx, func(ctx context.Context, repo records.Repository) error {
		existing, err := findAccount(ctx, repo, email)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrAccountExists
		}
		return putAccount(ctx, repo, user)
	})
	if err != nil {
		return nil, err
	}

	a.log.Info(ctx, "account registered", "email", email, "picture", picture != "")
	return user, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (*models.UserAccount, error) {
	email = strings.TrimSpace(email)
	if missingCredentials(email, password) {
		return nil, ErrMissingFields
	}

	var user *models.UserAccount
	err := a.store.InTx(ctx, func(ctx context.Context, repo records.Repository) error {
		u, err := findAccount(ctx, repo, email)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrInvalidCredentials
		}

		if u.IsLegacy() {
			if !cryptox.CheckLegacyPassword(password, u.Password) {
				return ErrInvalidCredentials
			}
			u.Salt, u.Verifier = cryptox.NewVerifier([]byte(password))
			u.Password = ""
			if err := putAccount(ctx, repo, u); err != nil {
				return err
			}
			a.log.Info(ctx, "upgraded legacy password record", "email", email)
		} else if !cryptox.CheckPassword([]byte(password), u.Salt, u.Verifier) {
			return ErrInvalidCredentials
		}

		key, err := sessionKey(ctx, repo)
		if err != nil {
			return err
		}
		token, err := GenerateSessionToken(u.Email, key, a.sessionTTL, a.now())
		if err != nil {
			return err
		}
		user = u
		return repo.Put(ctx, common.LoggedUserKey, []byte(token))
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			a.log.Warn(ctx, "login rejected", "email", email)
		}
		return nil, err
	}

	a.log.Info(ctx, "logged in", "email", email)
	return user, nil
}

// sessionKey returns the HMAC key for session tokens, creating it on first use.
func sessionKey(ctx context.Context, repo records.Repository) ([]byte, error) {
	key, err := repo.Get(ctx, common.SessionKeyKey)
	if err != nil {
		return nil, err
	}
	if len(key) == sessionKeySize {
		return key, nil
	}

	key = common.GenerateRandByteArray(sessionKeySize)
	if err := repo.Put(ctx, common.SessionKeyKey, key); err != nil {
		return nil, err
	}
	return key, nil
}

func (a *authService) Current(ctx context.Context) (*models.UserAccount, error) {
	token, err := a.store.Get(ctx, common.LoggedUserKey)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, ErrNotLoggedIn
	}

	key, err := a.store.Get(ctx, common.SessionKeyKey)
	if err != nil {
		return nil, err
	}
	if len(key) != sessionKeySize {
		return nil, ErrNotLoggedIn
	}

	email, err := EmailFromSessionToken(string(token), key)
	if err != nil {
		a.log.Debug(ctx, "session rejected", "error", err)
		return nil, ErrNotLoggedIn
	}

	u, err := findAccount(ctx, a.store, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	for _, key := range []string{common.LoggedUserKey, common.LoggedInKey} {
		if err := a.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	a.log.Info(ctx, "logged out")
	return nil
}

func (a *authService) SetProfilePicture(ctx context.Context, path string) (*models.UserAccount, error) {
	user, err := a.Current(ctx)
	if err != nil {
		return nil, err
	}

	img, err := LoadImage(path, MaxProfilePictureSize)
	if err != nil {
		return nil, err
	}

	ref, err := a.avatars.Save(ctx, user.Email, img)
	if err != nil {
		return nil, fmt.Errorf("profile picture: %w", err)
	}

	err = a.store.InTx(ctx, func(ctx context.Context, repo records.Repository) error {
		u, err := findAccount(ctx, repo, user.Email)
		if err != nil {
			return err
		}
		if u == nil {
			return ErrNotLoggedIn
		}
		u.ProfilePicture = ref
		user = u
		return putAccount(ctx, repo, u)
	})
	if err != nil {
		return nil, err
	}

	a.log.Info(ctx, "profile picture updated", "email", user.Email, "mime", img.MIME)
	return user, nil
}
