package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/conference-scheduler/internal/conference"
	"github.com/example/conference-scheduler/internal/schedule"
)

// RegisterParams wraps the data for public self-signup.
type RegisterParams struct {
	Username string
	Password string
}

// CreateAccountParams wraps the data for organizer-driven account creation.
type CreateAccountParams struct {
	Principal Principal
	Input     UserInput
}

// UserService manages account registration and speaker queries.
type UserService struct {
	state        *State
	hashPassword func(string) (string, error)
	logger       *slog.Logger
}

// NewUserService wires a user service over the shared state.
func NewUserService(state *State) *UserService {
	return NewUserServiceWithLogger(state, nil)
}

// NewUserServiceWithLogger wires a user service with a specified logger.
func NewUserServiceWithLogger(state *State, logger *slog.Logger) *UserService {
	return &UserService{
		state: state,
		hashPassword: func(password string) (string, error) {
			return HashPassword(password, DefaultArgon2idParams)
		},
		logger: defaultLogger(logger),
	}
}

func (s *UserService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "UserService", operation, attrs...)
}

// Register creates a plain attendee account. Self-signup never grants an
// elevated permission level.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (user UserView, err error) {
	if s == nil {
		err = fmt.Errorf("UserService is nil")
		return
	}

	logger := s.loggerWith(ctx, "Register", "username", params.Username)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to register user", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "user registered")
	}()

	user, err = s.create(params.Username, params.Password, conference.PermissionAttendee)
	return
}

// CreateAccount creates an account at any permission level for an organizer.
// A speaker-level account is registered in the speaker directory and gains a
// bookable schedule.
func (s *UserService) CreateAccount(ctx context.Context, params CreateAccountParams) (user UserView, err error) {
	if s == nil {
		err = fmt.Errorf("UserService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateAccount",
		"principal", params.Principal.Username,
		"username", params.Input.Username,
		"permission", params.Input.Permission,
	)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create account", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "account created")
	}()

	if !params.Principal.IsOrganizer() {
		err = ErrUnauthorized
		return
	}

	user, err = s.create(params.Input.Username, params.Input.Password, params.Input.Permission)
	return
}

func (s *UserService) create(username, password string, permission conference.PermissionLevel) (UserView, error) {
	username = strings.TrimSpace(username)

	vErr := &ValidationError{}
	if username == "" {
		vErr.add("username", "username is required")
	}
	if password == "" {
		vErr.add("password", "password is required")
	}
	if vErr.HasErrors() {
		return UserView{}, vErr
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return UserView{}, err
	}

	builder := conference.NewUserBuilder().
		Username(username).
		PasswordHash(hash).
		Permission(permission)

	var created *conference.User
	s.state.Write(func() {
		if permission == conference.PermissionSpeaker {
			created, err = s.state.users.CreateSpeaker(builder)
		} else {
			created, err = s.state.users.CreateUser(builder)
		}
	})
	if err != nil {
		return UserView{}, mapRegistryError(err)
	}

	return userView(created), nil
}

// GetUser returns the read model for the named account.
func (s *UserService) GetUser(ctx context.Context, username string) (UserView, error) {
	if s == nil {
		return UserView{}, fmt.Errorf("UserService is nil")
	}

	var view UserView
	var err error
	s.state.Read(func() {
		var user *conference.User
		user, err = s.state.users.Get(username)
		if err != nil {
			err = mapRegistryError(err)
			return
		}
		view = userView(user)
	})
	return view, err
}

// ListUsers returns every registered account for an organizer.
func (s *UserService) ListUsers(ctx context.Context, principal Principal) ([]UserView, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}
	if !principal.IsOrganizer() {
		return nil, ErrUnauthorized
	}

	var views []UserView
	s.state.Read(func() {
		for _, username := range s.state.users.Usernames() {
			user, err := s.state.users.Get(username)
			if err != nil {
				continue
			}
			views = append(views, userView(user))
		}
	})
	return views, nil
}

// AvailableSpeakers lists the speakers free for the hour starting at start.
func (s *UserService) AvailableSpeakers(ctx context.Context, principal Principal, start time.Time) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("UserService is nil")
	}
	if !principal.IsOrganizer() {
		return nil, ErrUnauthorized
	}

	var speakers []string
	s.state.Read(func() {
		speakers = s.state.users.AvailableSpeakers(schedule.EventInterval(start))
	})
	return speakers, nil
}

func userView(user *conference.User) UserView {
	return UserView{
		Username:       user.Username(),
		Permission:     user.Permission(),
		EnrolledEvents: user.EnrolledEventNames(),
	}
}
