package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/mrlokans/hirehub/internal/entities"
)

// UserStore is the credential store. Implementations translate their own
// errors into ErrUserNotFound, ErrDuplicateEmail and ErrStorage.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}

// SignupInput is the profile a new account is created from. File references
// come from the upload pipeline and may be nil.
type SignupInput struct {
	Name                 string
	Email                string
	Password             string
	Phone                string
	UserType             entities.UserType
	City                 string
	State                string
	Country              string
	Latitude             *float64
	Longitude            *float64
	Expertise            string
	Experience           string
	ExpectedCompensation string
	ProfileImage         *string
	IdentityDocument     *string
}

// Session is the outcome of a successful login.
type Session struct {
	Token string
	User  *entities.User
}

// Service implements signup, login and profile lookup.
type Service struct {
	users  UserStore
	hasher Hasher
	tokens *TokenIssuer
}

// NewService creates a new authentication service.
func NewService(users UserStore, hasher Hasher, tokens *TokenIssuer) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new account. The returned user never carries the plaintext password.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*entities.User, error) {
	email := NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	city := strings.TrimSpace(in.City)
	state := strings.TrimSpace(in.State)
	country := strings.TrimSpace(in.Country)

	if name == "" || email == "" || in.Password == "" || city == "" || state == "" || country == "" {
		return nil, ErrValidation
	}

	userType := in.UserType
	if userType == "" {
		userType = entities.UserTypeWorker
	}
	if !userType.Valid() {
		return nil, ErrInvalidUserType
	}

	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrDuplicateEmail
	case !errors.Is(err, ErrUserNotFound):
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: digest,
		Phone:        strings.TrimSpace(in.Phone),
		UserType:     userType,
		Location: entities.Location{
			City:    city,
			State:   state,
			Country: country,
			Coordinates: entities.Coordinates{
				Latitude:  in.Latitude,
				Longitude: in.Longitude,
			},
		},
		Expertise:            in.Expertise,
		Experience:           in.Experience,
		ExpectedCompensation: in.ExpectedCompensation,
		ProfileImage:         in.ProfileImage,
		IdentityDocument:     in.IdentityDocument,
	}

	// The pre-check above is only a fast path; the store's unique index
	// decides concurrent races.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, User: user}, nil
}

// UserInfo loads the full profile of an admitted identity.
func (s *Service) UserInfo(ctx context.Context, identity *Identity) (*entities.User, error) {
	if identity == nil || identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	return s.users.FindByID(ctx, identity.UserID)
}
