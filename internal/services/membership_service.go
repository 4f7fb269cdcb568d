package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nivasa/backend/internal/config"
	"github.com/nivasa/backend/internal/dto"
	"github.com/nivasa/backend/internal/models"
	"github.com/nivasa/backend/internal/tenant"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrValidation           = errors.New("missing required fields")
	ErrApartmentNotFound    = errors.New("apartment not found")
	ErrInvalidApartmentCode = errors.New("invalid apartment code")
	ErrCodeCollision        = errors.New("apartment code already exists, please try again")
	ErrUserExists           = errors.New("user already exists")
	ErrFlatTaken            = errors.New("flat number already registered in this apartment")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrAdminProtected       = errors.New("admin users cannot be deleted")
)

const apartmentCodeLength = 4
const apartmentCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type MembershipService struct {
	db       *gorm.DB
	cfg      *config.Config
	validate *validator.Validate
}

func NewMembershipService(db *gorm.DB, cfg *config.Config) *MembershipService {
	return &MembershipService{
		db:       db,
		cfg:      cfg,
		validate: validator.New(),
	}
}

// RegisterApartment creates a new tenant with a generated 4-character join
// code. The code is not guaranteed collision-free; the unique index on
// apartment_code rejects a collision and the caller retries the whole
// registration.
func (s *MembershipService) RegisterApartment(name string) (*models.Apartment, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: apartment name is required", ErrValidation)
	}

	apartment := models.Apartment{
		ID:            uuid.New(),
		Name:          name,
		ApartmentCode: generateApartmentCode(),
	}

	if err := s.db.Create(&apartment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCodeCollision
		}
		return nil, fmt.Errorf("failed to create apartment: %w", err)
	}

	slog.Info("apartment registered", "apartment_code", apartment.ApartmentCode, "name", name)
	return &apartment, nil
}

// Signup registers a user against an apartment join code. Phone uniqueness
// is per apartment, not global, so one person can join multiple apartments
// with the same phone.
func (s *MembershipService) Signup(role string, req *dto.SignupRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", req.ApartmentCode).First(&apartment).Error; err != nil {
		return nil, ErrInvalidApartmentCode
	}

	var existing models.User
	err := s.db.Scopes(tenant.ForApartment(apartment.ApartmentCode)).
		Where("phone_number = ?", req.PhoneNumber).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}

	err = s.db.Scopes(tenant.ForApartment(apartment.ApartmentCode)).
		Where("flat_number = ?", req.FlatNumber).First(&existing).Error
	if err == nil {
		return nil, ErrFlatTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:            uuid.New(),
		Username:      req.Username,
		PhoneNumber:   req.PhoneNumber,
		FlatNumber:    req.FlatNumber,
		Password:      string(hash),
		Role:          role,
		ApartmentCode: apartment.ApartmentCode,
	}

	if err := s.db.Create(&user).Error; err != nil {
		// Two concurrent signups for the same flat both pass the pre-check;
		// the compound unique index lets exactly one through.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFlatTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// A direct admin signup can create a second admin. Repair immediately
	// instead of waiting for the next neighbor-list read.
	if role == models.RoleAdmin {
		if _, err := s.EnforceSingleAdmin(apartment.ApartmentCode); err != nil {
			slog.Error("single-admin repair after signup failed", "apartment_code", apartment.ApartmentCode, "error", err)
		}
	}

	return &user, nil
}

// Login resolves a user by phone number globally. If the same phone is
// registered in multiple apartments the earliest-created user wins.
func (s *MembershipService) Login(req *dto.LoginRequest) (*dto.SessionResponse, error) {
	var user models.User
	if err := s.db.Where("phone_number = ?", req.PhoneNumber).
		Order("created_at ASC").First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	apartment, err := s.apartmentByCode(user.ApartmentCode)
	if err != nil {
		return nil, err
	}

	token, err := s.generateAccessToken(&user)
	if err != nil {
		return nil, err
	}

	resp := buildSession(&user, apartment)
	resp.Message = "Login successful"
	resp.Token = token
	return resp, nil
}

// Validate re-hydrates a session from a signed token without a password
// check.
func (s *MembershipService) Validate(rawToken string) (*dto.SessionResponse, error) {
	if rawToken == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(rawToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	phone, _ := claims["phone"].(string)
	code, _ := claims["apartment_code"].(string)
	if phone == "" {
		return nil, ErrInvalidToken
	}

	var user models.User
	if err := s.db.Scopes(tenant.ForApartment(code)).
		Where("phone_number = ?", phone).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	apartment, err := s.apartmentByCode(user.ApartmentCode)
	if err != nil {
		return nil, err
	}

	return buildSession(&user, apartment), nil
}

// ListNeighbors returns all users of an apartment with the single-admin
// invariant repaired first. Passwords never serialize.
func (s *MembershipService) ListNeighbors(apartmentCode string) ([]models.User, error) {
	demoted, err := s.EnforceSingleAdmin(apartmentCode)
	if err != nil {
		return nil, err
	}
	if demoted > 0 {
		slog.Info("demoted extra admins", "apartment_code", apartmentCode, "count", demoted)
	}

	var neighbors []models.User
	err = s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Order("created_at ASC").Find(&neighbors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list neighbors: %w", err)
	}
	return neighbors, nil
}

// EnforceSingleAdmin demotes every admin except the earliest-created one
// to resident. Idempotent; returns the number of users demoted.
func (s *MembershipService) EnforceSingleAdmin(apartmentCode string) (int, error) {
	var admins []models.User
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Where("role = ?", models.RoleAdmin).
		Order("created_at ASC").Find(&admins).Error
	if err != nil {
		return 0, fmt.Errorf("failed to list admins: %w", err)
	}
	if len(admins) <= 1 {
		return 0, nil
	}

	demoted := 0
	for _, extra := range admins[1:] {
		if err := s.db.Model(&models.User{}).Where("id = ?", extra.ID).
			Update("role", models.RoleResident).Error; err != nil {
			return demoted, fmt.Errorf("failed to demote user %s: %w", extra.ID, err)
		}
		demoted++
	}
	return demoted, nil
}

// UpdateResident edits username/phone/flat, re-checking flat uniqueness
// within the same apartment excluding the target user.
func (s *MembershipService) UpdateResident(userID uuid.UUID, req *dto.UpdateResidentRequest) (*models.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, ErrValidation
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if req.FlatNumber != user.FlatNumber {
		var existing models.User
		err := s.db.Scopes(tenant.ForApartment(user.ApartmentCode)).
			Where("flat_number = ? AND id <> ?", req.FlatNumber, userID).
			First(&existing).Error
		if err == nil {
			return nil, ErrFlatTaken
		}
	}

	user.Username = req.Username
	user.PhoneNumber = req.PhoneNumber
	user.FlatNumber = req.FlatNumber

	if err := s.db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFlatTaken
		}
		return nil, fmt.Errorf("failed to update resident: %w", err)
	}
	return &user, nil
}

// DeleteResident removes a user unless they hold the admin role.
func (s *MembershipService) DeleteResident(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if user.Role == models.RoleAdmin {
		return nil, ErrAdminProtected
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to delete resident: %w", err)
	}
	return &user, nil
}

// CheckFlatAvailability is a read-only predicate with no side effects.
func (s *MembershipService) CheckFlatAvailability(flatNumber, apartmentCode string) (bool, error) {
	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", apartmentCode).First(&apartment).Error; err != nil {
		return false, ErrApartmentNotFound
	}

	var existing models.User
	err := s.db.Scopes(tenant.ForApartment(apartmentCode)).
		Where("flat_number = ?", flatNumber).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, fmt.Errorf("failed to check flat availability: %w", err)
}

func (s *MembershipService) apartmentByCode(code string) (*models.Apartment, error) {
	var apartment models.Apartment
	if err := s.db.Where("apartment_code = ?", code).First(&apartment).Error; err != nil {
		return nil, ErrApartmentNotFound
	}
	return &apartment, nil
}

func (s *MembershipService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":            user.ID.String(),
		"phone":          user.PhoneNumber,
		"role":           user.Role,
		"apartment_code": user.ApartmentCode,
		"iat":            time.Now().Unix(),
		"exp":            time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func buildSession(user *models.User, apartment *models.Apartment) *dto.SessionResponse {
	name := "Resident of " + apartment.Name
	if user.Role == models.RoleAdmin {
		name = "Admin of " + apartment.Name
	}
	return &dto.SessionResponse{
		Role:          user.Role,
		Phone:         user.PhoneNumber,
		Username:      user.Username,
		FlatNumber:    user.FlatNumber,
		ApartmentCode: user.ApartmentCode,
		ApartmentID:   apartment.ID,
		Name:          name,
	}
}

func generateApartmentCode() string {
	b := make([]byte, apartmentCodeLength)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = apartmentCodeCharset[int(b[i])%len(apartmentCodeCharset)]
	}
	return string(b)
}
