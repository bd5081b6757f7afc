package services

import (
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/rpupo63/newsroom-backend/auth"
	"github.com/rpupo63/newsroom-backend/errs"
	"github.com/rpupo63/newsroom-backend/models"
)

// UserService covers account lifecycle: registration, login, profile
// updates under the field-level role rule, and account deletion.
type UserService struct {
	users  UserStore
	issuer auth.TokenIssuer
	logger zerolog.Logger
}

func NewUserService(users UserStore, issuer auth.TokenIssuer) *UserService {
	return &UserService{
		users:  users,
		issuer: issuer,
		logger: log.With().Str("serviceName", "userService").Logger(),
	}
}

type RegisterInput struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required")),
		validation.Field(&in.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email"),
		),
		validation.Field(&in.Password, validation.Required.Error("password is required")),
		validation.Field(&in.Role, validation.In(
			models.RoleReader, models.RoleJournalist, models.RoleEditor, models.RoleAdmin,
		).Error("invalid role")),
	)
}

// UpdateUserInput is a partial profile patch; nil fields are untouched.
type UpdateUserInput struct {
	Name     *string      `json:"name"`
	Email    *string      `json:"email"`
	Password *string      `json:"password"`
	Role     *models.Role `json:"role"`
}

// AuthPayload is returned by Register and Login.
type AuthPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and signs it in. Email is stored lowercased;
// the default role is READER.
func (s *UserService) Register(input RegisterInput) (*AuthPayload, error) {
	if err := input.Validate(); err != nil {
		return nil, errs.NewInvalidInputError(err.Error())
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, errs.FromDatabase("find", "user", err)
	}
	if existing != nil {
		return nil, errs.NewConflictError("user already exists with this email")
	}

	role := input.Role
	if role == "" {
		role = models.RoleReader
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.NewInternalError("failed to hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Add(user); err != nil {
		return nil, errs.FromDatabase("create", "user", err)
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, errs.NewInternalError("failed to issue token")
	}
	return &AuthPayload{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(email, password string) (*AuthPayload, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, errs.FromDatabase("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewAuthenticationRequiredError()
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errs.NewAuthenticationRequiredError()
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, errs.NewInternalError("failed to issue token")
	}
	return &AuthPayload{Token: token, User: user}, nil
}

// Get resolves a user by id.
func (s *UserService) Get(id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, errs.FromDatabase("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFoundError("user")
	}
	return user, nil
}

// Update applies a partial profile patch. A non-admin changing their own
// role is denied on that field, independent of the rest of the patch.
func (s *UserService) Update(id uuid.UUID, input UpdateUserInput, principal *auth.Principal) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, errs.FromDatabase("find", "user", err)
	}
	if user == nil {
		return nil, errs.NewNotFoundError("user")
	}

	changesRole := input.Role != nil && *input.Role != user.Role
	if decision := auth.CanUpdateUser(principal, id, changesRole); !decision.Allowed() {
		return nil, decision.Err()
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, errs.NewInvalidFieldError("name", "name must not be empty")
		}
		user.Name = name
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if err := validation.Validate(email, validation.Required, is.Email); err != nil {
			return nil, errs.NewInvalidFieldError("email", "invalid email")
		}
		if email != user.Email {
			other, err := s.users.FindByEmail(email)
			if err != nil {
				return nil, errs.FromDatabase("find", "user", err)
			}
			if other != nil {
				return nil, errs.NewConflictError("user already exists with this email")
			}
		}
		user.Email = email
	}

	if input.Password != nil {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, errs.NewInternalError("failed to hash password")
		}
		user.PasswordHash = string(hash)
	}

	if changesRole {
		if !input.Role.Valid() {
			return nil, errs.NewInvalidFieldError("role", "invalid role")
		}
		user.Role = *input.Role
	}

	if err := s.users.Update(user); err != nil {
		return nil, errs.FromDatabase("update", "user", err)
	}
	return user, nil
}

// Delete removes an account: self-deletion for everyone, cross-account for
// admins only.
func (s *UserService) Delete(id uuid.UUID, principal *auth.Principal) error {
	user, err := s.users.FindByID(id)
	if err != nil {
		return errs.FromDatabase("find", "user", err)
	}
	if user == nil {
		return errs.NewNotFoundError("user")
	}

	if decision := auth.CanDeleteUser(principal, id); !decision.Allowed() {
		return decision.Err()
	}

	if err := s.users.Delete(id); err != nil {
		return errs.FromDatabase("delete", "user", err)
	}
	return nil
}

// validatePassword enforces the registration password policy: at least 8
// characters with one upper, one lower and one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return errs.NewInvalidFieldError("password", "password must be at least 8 characters")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errs.NewInvalidFieldError("password", "password must contain at least one uppercase letter, one lowercase letter, and one number")
	}
	return nil
}
