package middleware

import (
	"strconv"
	"testing"
	"time"

	"alumnihub/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signClaims(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestIssueAndParseToken(t *testing.T) {
	user := &models.User{ID: 42, Email: "grad@example.com", UserType: models.UserTypeAlumni}

	token, issued, err := IssueToken(testSecret, user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, issued.JTI)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "grad@example.com", claims.Email)
	assert.Equal(t, models.UserTypeAlumni, claims.UserType)
	assert.Equal(t, issued.JTI, claims.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestIssueToken_RequiresSecretAndUser(t *testing.T) {
	_, _, err := IssueToken("", &models.User{ID: 1}, time.Hour)
	assert.Error(t, err)

	_, _, err = IssueToken(testSecret, &models.User{}, time.Hour)
	assert.Error(t, err)
}

func TestParseToken_Rejections(t *testing.T) {
	valid := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": strconv.Itoa(7),
			"iss": TokenIssuer,
			"aud": TokenAudience,
			"exp": time.Now().Add(time.Hour).Unix(),
		}
	}

	tests := []struct {
		name    string
		token   func() string
		wantErr error
	}{
		{
			name:    "empty token",
			token:   func() string { return "" },
			wantErr: ErrMissingToken,
		},
		{
			name:    "malformed",
			token:   func() string { return "malformed.token.here" },
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong secret",
			token: func() string {
				return signClaims(t, "another-secret-another-secret-another", valid())
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "expired",
			token: func() string {
				c := valid()
				c["exp"] = time.Now().Add(-time.Hour).Unix()
				return signClaims(t, testSecret, c)
			},
			wantErr: ErrInvalidToken,
		},
		{
			name: "wrong issuer",
			token: func() string {
				c := valid()
				c["iss"] = "someone-else"
				return signClaims(t, testSecret, c)
			},
			wantErr: ErrInvalidIssuer,
		},
		{
			name: "wrong audience",
			token: func() string {
				c := valid()
				c["aud"] = "someone-else"
				return signClaims(t, testSecret, c)
			},
			wantErr: ErrInvalidAud,
		},
		{
			name: "non numeric subject",
			token: func() string {
				c := valid()
				c["sub"] = "admin"
				return signClaims(t, testSecret, c)
			},
			wantErr: ErrInvalidSubj,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(testSecret, tt.token())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "", BearerToken("Basic dXNlcjpwYXNz"))
	assert.Equal(t, "", BearerToken("Bearer"))
	assert.Equal(t, "", BearerToken(""))
}
