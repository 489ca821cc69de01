package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"

	"user-resource-api/internal/application/ports"
	domain "user-resource-api/internal/domain/user"
	"user-resource-api/internal/infrastructure/mq"
	"user-resource-api/internal/interface/api/rest/dto/user"
)

// ASCII letters only, at least one.
const nameRule = "required,alpha"

type UserService struct {
	userRepository domain.Repository
	hasher         ports.PasswordHasher
	validate       *validator.Validate
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

// NewUserService wires the service. mq may be nil, in which case no
// lifecycle events are emitted.
func NewUserService(
	userRepository domain.Repository,
	hasher ports.PasswordHasher,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		validate:       validator.New(),
		mq:             mq,
		mCounter:       mCounter,
	}
}

func (us *UserService) CreateUser(ctx context.Context, in domain.CreateInput) (*domain.User, error) {
	if err := us.validate.Var(in.Name, nameRule); err != nil {
		return nil, domain.ErrInvalidName
	}

	existing, err := us.userRepository.FetchUser(ctx, domain.NewFilter().Eq(domain.FieldEmail, in.Email))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := us.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	uRet, err := us.userRepository.CreateUser(ctx, domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Cellphone:    in.Cellphone,
		Status:       true,
	})
	if err != nil {
		return nil, err
	}

	us.emit(ctx, http.MethodPost, uRet)
	us.inc("user_created_total")

	return uRet, nil
}

func (us *UserService) FindActiveUsers(ctx context.Context) (domain.Users, error) {
	return us.userRepository.FetchUsers(ctx, domain.NewFilter().Eq(domain.FieldStatus, true))
}

// SearchUsers reports every failure, bad dates included, as ErrSearchFailed.
func (us *UserService) SearchUsers(ctx context.Context, p domain.SearchParams) (domain.Users, error) {
	f, err := p.BuildFilter()
	if err != nil {
		us.inc("user_search_failed_total")
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	users, err := us.userRepository.FetchUsers(ctx, f)
	if err != nil {
		us.inc("user_search_failed_total")
		return nil, fmt.Errorf("%w: %w", domain.ErrSearchFailed, err)
	}

	return users, nil
}

// BulkCreateUsers creates users one by one in input order. A failed item
// never stops the batch; only the counts are reported.
func (us *UserService) BulkCreateUsers(ctx context.Context, in []domain.CreateInput) domain.BulkResult {
	var res domain.BulkResult
	for _, u := range in {
		if _, err := us.CreateUser(ctx, u); err != nil {
			res.FailedCount++
			continue
		}
		res.SuccessfulCount++
	}

	return res
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	return us.userRepository.FetchUser(ctx, domain.ActiveByID(id))
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return us.userRepository.FetchUser(ctx, domain.NewFilter().
		Eq(domain.FieldEmail, email).
		Eq(domain.FieldStatus, true))
}

// UserExists looks the id up regardless of status.
func (us *UserService) UserExists(ctx context.Context, id domain.ID) (bool, error) {
	u, err := us.userRepository.FetchUser(ctx, domain.ByID(id))
	if err != nil {
		return false, err
	}

	return u != nil, nil
}

func (us *UserService) UpdateUser(ctx context.Context, id domain.ID, in domain.UpdateInput) error {
	u, err := us.userRepository.FetchUser(ctx, domain.ActiveByID(id))
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}

	ch := domain.Changes{
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Cellphone:    u.Cellphone,
	}
	if in.Name != nil {
		ch.Name = *in.Name
	}
	if in.Cellphone != nil {
		ch.Cellphone = *in.Cellphone
	}
	if in.Password != nil && *in.Password != "" {
		if ch.PasswordHash, err = us.hasher.Hash(*in.Password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}

	// keyed by id only, the status scope applies to the lookup above
	if err = us.userRepository.UpdateUser(ctx, id, ch); err != nil {
		return err
	}

	u.Name, u.PasswordHash, u.Cellphone = ch.Name, ch.PasswordHash, ch.Cellphone
	us.emit(ctx, http.MethodPut, u)
	us.inc("user_updated_total")

	return nil
}

func (us *UserService) DeleteUser(ctx context.Context, id domain.ID) error {
	u, err := us.userRepository.FetchUser(ctx, domain.ActiveByID(id))
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrUserNotFound
	}

	if err = us.userRepository.SetStatus(ctx, id, false); err != nil {
		return err
	}

	u.Status = false
	us.emit(ctx, http.MethodDelete, u)
	us.inc("user_deleted_total")

	return nil
}

func (us *UserService) emit(ctx context.Context, method string, u *domain.User) {
	if us.mq == nil || u == nil {
		return
	}

	select {
	case us.mq.GetInputChan() <- mq.NewEvent(method, user.ToResponseUser(*u)):
	case <-ctx.Done():
	}
}

func (us *UserService) inc(label string) {
	if us.mCounter != nil {
		us.mCounter.WithLabelValues(label).Inc()
	}
}
