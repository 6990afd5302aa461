package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"schedule-board/internal/domain"
	"schedule-board/internal/repository"
)

var (
	// ErrDuplicateEmail is returned when a create or update would give two
	// registered users the same email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound is returned when a referenced user or block does not exist.
	ErrNotFound = errors.New("not found")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// CreateUserParams carries the operator-supplied fields for a new user.
type CreateUserParams struct {
	Name    string
	Address string
	Phone   string
	Email   string
}

// UpdateUserParams carries replacement fields for an existing user. Color is
// optional; when empty the user keeps the color it already has.
type UpdateUserParams struct {
	Name    string
	Address string
	Phone   string
	Email   string
	Color   string
}

// UserService owns the registered users: lifecycle, email uniqueness and
// color assignment. Deleting a user cascades to its time blocks.
type UserService interface {
	Create(ctx context.Context, params CreateUserParams) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.User, error)
}

type userService struct {
	users   repository.UserRepository
	blocks  repository.BlockRepository
	palette []string
	logger  *logrus.Logger
}

// NewUserService panics on an empty palette: assignColor has no color to
// hand out, and a silent default would hide the misconfiguration.
func NewUserService(users repository.UserRepository, blocks repository.BlockRepository, palette []string, logger *logrus.Logger) UserService {
	if len(palette) == 0 {
		panic("user service: color palette must not be empty")
	}
	return &userService{
		users:   users,
		blocks:  blocks,
		palette: palette,
		logger:  logger,
	}
}

func (s *userService) Create(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	params = CreateUserParams{
		Name:    strings.TrimSpace(params.Name),
		Address: strings.TrimSpace(params.Address),
		Phone:   strings.TrimSpace(params.Phone),
		Email:   strings.TrimSpace(params.Email),
	}
	if err := validateUserFields(params.Name, params.Address, params.Phone, params.Email); err != nil {
		return nil, err
	}

	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range existing {
		if u.Email == params.Email {
			return nil, ErrDuplicateEmail
		}
	}

	user := &domain.User{
		ID:      uuid.New(),
		Name:    params.Name,
		Address: params.Address,
		Phone:   params.Phone,
		Email:   params.Email,
		Color:   s.assignColor(usedColors(existing)),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, params UpdateUserParams) (*domain.User, error) {
	params = UpdateUserParams{
		Name:    strings.TrimSpace(params.Name),
		Address: strings.TrimSpace(params.Address),
		Phone:   strings.TrimSpace(params.Phone),
		Email:   strings.TrimSpace(params.Email),
		Color:   strings.TrimSpace(params.Color),
	}
	if err := validateUserFields(params.Name, params.Address, params.Phone, params.Email); err != nil {
		return nil, err
	}

	current, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	existing, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, u := range existing {
		if u.ID != id && u.Email == params.Email {
			return nil, ErrDuplicateEmail
		}
	}

	user := &domain.User{
		ID:      id,
		Name:    params.Name,
		Address: params.Address,
		Phone:   params.Phone,
		Email:   params.Email,
		Color:   current.Color,
	}
	if params.Color != "" {
		user.Color = params.Color
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Delete removes the user and every time block that references it. Absent
// ids are a no-op.
func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if err := s.blocks.DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("cascade blocks: %w", err)
	}
	return nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// assignColor picks a random unused palette entry. Once every palette color
// is in use the pick is uniform over the whole palette, so two users can end
// up sharing a color.
func (s *userService) assignColor(used map[string]struct{}) string {
	available := make([]string, 0, len(s.palette))
	for _, c := range s.palette {
		if _, taken := used[c]; !taken {
			available = append(available, c)
		}
	}
	if len(available) > 0 {
		return available[rand.Intn(len(available))]
	}
	if s.logger != nil {
		s.logger.Debug("color palette exhausted, reusing a color")
	}
	return s.palette[rand.Intn(len(s.palette))]
}

func usedColors(users []domain.User) map[string]struct{} {
	used := make(map[string]struct{}, len(users))
	for _, u := range users {
		used[u.Color] = struct{}{}
	}
	return used
}

func validateUserFields(name, address, phone, email string) error {
	if name == "" {
		return errors.New("name is required")
	}
	if address == "" {
		return errors.New("address is required")
	}
	if phone == "" {
		return errors.New("phone is required")
	}
	if email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}
