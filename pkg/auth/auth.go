package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arnavshah/wichtel-api-go/pkg/database"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidKeyFormat  = errors.New("invalid key format")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrKeyRevoked        = errors.New("api key revoked")
	jwtAlgorithm         = jwt.SigningMethodHS256
	tokenLifetime        = 24 * time.Hour
	passwordHashStrength = bcrypt.DefaultCost
)

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Signer issues and checks admin tokens and API keys
type Signer struct {
	jwtSecret    []byte
	masterSecret []byte
}

// NewSigner creates a signer from the JWT and API key secrets
func NewSigner(jwtSecret, masterSecret string) *Signer {
	return &Signer{
		jwtSecret:    []byte(jwtSecret),
		masterSecret: []byte(masterSecret),
	}
}

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashStrength)
	return string(bytes), err
}

// CheckPasswordHash compares a password with its hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// CreateToken creates a new JWT token for an admin
func (s *Signer) CreateToken(username string) (string, error) {
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwtAlgorithm, claims)
	return token.SignedString(s.jwtSecret)
}

// VerifyToken verifies a JWT token
func (s *Signer) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Signer) sign(userID string) string {
	h := hmac.New(sha256.New, s.masterSecret)
	h.Write([]byte(userID))
	return hex.EncodeToString(h.Sum(nil))
}

// GenerateKey creates a signed API key of the form <userID>.<hmac-sha256>
func (s *Signer) GenerateKey(userID string) string {
	return userID + "." + s.sign(userID)
}

// VerifyKey validates an HMAC-signed API key and returns its user ID
func (s *Signer) VerifyKey(key string) (string, error) {
	userID, providedSignature, ok := strings.Cut(key, ".")
	if !ok || userID == "" || strings.Contains(providedSignature, ".") {
		return "", ErrInvalidKeyFormat
	}

	// Constant-time comparison
	if !hmac.Equal([]byte(providedSignature), []byte(s.sign(userID))) {
		return "", ErrInvalidSignature
	}

	return userID, nil
}

// KeyPreview shortens a key for listings, e.g. "ali...9f3c"
func KeyPreview(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}

// LookupAPIKey fetches the record of a verified key, creating it on first use, and stamps LastUsed.
// Signed keys stay valid forever, so revocation is a flag on the record.
func LookupAPIKey(db *gorm.DB, key, userID string, defaultLimit int) (*database.APIKey, error) {
	var apiKey database.APIKey
	// Attrs only fills a new row; the lookup matches on the key alone
	err := db.Where(database.APIKey{Key: key}).Attrs(database.APIKey{
		Name:       userID,
		KeyPreview: KeyPreview(key),
		RateLimit:  defaultLimit,
	}).FirstOrCreate(&apiKey).Error
	if err != nil {
		return nil, err
	}

	if apiKey.Revoked {
		return nil, ErrKeyRevoked
	}

	now := time.Now()
	apiKey.LastUsed = &now
	if err := db.Model(&apiKey).Update("last_used", now).Error; err != nil {
		return nil, err
	}

	return &apiKey, nil
}

// EnsureAdminExists creates the admin account if the master_users table is empty.
// It reports whether a user was created.
func EnsureAdminExists(db *gorm.DB, username, password string) (bool, error) {
	var count int64
	if err := db.Model(&database.MasterUser{}).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, err
	}

	user := database.MasterUser{
		Username:     username,
		PasswordHash: hash,
	}
	if err := db.Create(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}
