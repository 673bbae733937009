package service

import (
	"context"
	"fmt"
	"strings"

	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/s3"
	"hotelier/internal/domains/user/model"
	"hotelier/internal/domains/user/model/dto"
	"hotelier/internal/domains/user/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"
)

type User interface {
	Me(ctx context.Context, userID string) (dto.UserResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, role, name string) (dto.GetUsersResponse, error)
	UpdateInfo(ctx context.Context, req dto.UpdateUserInfoRequest, userID string) (dto.UserResponse, error)
	UploadProfilePicture(ctx context.Context, req dto.UploadProfilePictureRequest, userID string) (string, error)
	UpdateRole(ctx context.Context, req dto.UpdateUserRoleRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Me(ctx context.Context, userID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, userID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(userID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

// GetAll lists users, optionally narrowed by role in SQL and by a fuzzy name
// query in memory. The fuzzy match is order independent: every character of
// the query has to appear somewhere in the name or its normalized form. Paging
// happens after the fuzzy pass so page counts reflect what the caller sees.
func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, role, name string) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllUser, fmt.Sprintf("%s:%s:%d:%d", role, shared.NormalizeName(name), params.Page, params.Limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	filter := gDto.FilterGroup{}
	if role != constant.Empty {
		filter = shared.FilterByField(strings.ToLower(role), model.FieldRole, model.TableName)
	}

	sortOnly := gDto.QueryParams{SortBy: params.SortBy, SortOrder: params.SortOrder}

	users, err := s.repo.GetAll(ctx, sortOnly, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	if name != constant.Empty {
		matched := make([]model.User, 0, len(users))

		for _, user := range users {
			if shared.FuzzyMatch(name, user.Name) || shared.FuzzyMatch(name, user.NormalizedName) {
				matched = append(matched, user)
			}
		}

		users = matched
	}

	total := len(users)

	if total == 0 || params.Page > shared.CalculateTotalPage(total, params.Limit) {
		return res, failure.PageNotFound
	}

	res.FromModels(shared.PageWindow(users, params.Page, params.Limit), total, params.Page, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateInfo(ctx context.Context, req dto.UpdateUserInfoRequest, userID string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateInfo")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, model.FieldID, model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.NotFound("user not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, userID)
	if req.Name != constant.Empty {
		updatedFields[model.FieldNormalizedName] = shared.NormalizeName(req.Name)
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update user info")

		return res, fmt.Errorf("failed to update user info: %w", err)
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload user")

		return res, fmt.Errorf("failed to reload user: %w", err)
	}

	res.FromModel(updated)

	s.invalidate(ctx, userID)

	return res, nil
}

func (s *serviceImpl) UploadProfilePicture(ctx context.Context, req dto.UploadProfilePictureRequest, userID string) (url string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadProfilePicture")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(userID, model.FieldID, model.TableName)

	user, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return constant.Empty, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return constant.Empty, failure.NotFound("user not found") //nolint:wrapcheck
	}

	bucketName := s.cfg.External.S3.BucketName
	filename := uuid.NewString()

	parts := strings.Split(req.ProfilePicture.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err = s.s3.UploadFile(ctx, bucketName, constant.StorageDirProfilePics, req.ProfilePictureFile, req.ProfilePicture, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload profile picture to S3")

		return constant.Empty, fmt.Errorf("failed to upload profile picture: %w", err)
	}

	updatedFields := shared.TransformFields(struct {
		ProfilePicture string `db:"profile_picture"`
	}{ProfilePicture: url}, userID)

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to store profile picture url")

		_ = s.s3.DeleteFile(ctx, bucketName, constant.StorageDirProfilePics, filename)

		return constant.Empty, fmt.Errorf("failed to store profile picture url: %w", err)
	}

	if user.ProfilePicture != nil && *user.ProfilePicture != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, *user.ProfilePicture)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, constant.Empty, oldObjectName)
		}
	}

	s.invalidate(ctx, userID)

	return url, nil
}

func (s *serviceImpl) UpdateRole(ctx context.Context, req dto.UpdateUserRoleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateRole")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found") //nolint:wrapcheck
	}

	operator, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(req, operator), filter); err != nil {
		log.Error().Err(err).Msg("failed to update user role")

		return fmt.Errorf("failed to update user role: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound("user not found") //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, userID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, userID)); err != nil {
			log.Error().Err(err).Msg("failed to delete user cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()
}
