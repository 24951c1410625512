/*
Package handler provides HTTP handler functions for user authentication and management.
*/
package handler

import (
	"net/http"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"dmchat/internal/app/db"
	"dmchat/internal/app/user"
	"dmchat/internal/pkg/auth/jwt"
	"dmchat/internal/pkg/errs"
	"dmchat/internal/pkg/logx"
	"dmchat/internal/pkg/req"
	"dmchat/internal/pkg/resp"
)

var (
	emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// userResponse shapes an account for API responses, resolving the stored
// avatar key to a full URL.
func (deps *AppDeps) userResponse(u user.User) map[string]any {
	return map[string]any{
		"id":        u.ID,
		"email":     u.Email,
		"fullName":  u.FullName,
		"avatar":    deps.FullAssetURL(u.AvatarURL),
		"createdAt": u.CreatedAt,
	}
}

type SignupInput struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

// HandleSignup processes the request to create a new account from email,
// display name, and password.
func HandleSignup(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if payload := jwt.GetPayloadFromContext(r); payload != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input SignupInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if !emailRegex.MatchString(input.Email) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidEmail))
			return
		}

		nameLen := utf8.RuneCountInString(input.FullName)
		if nameLen == 0 || nameLen > 100 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidFullName))
			return
		}

		passwordLen := utf8.RuneCountInString(input.Password)
		if passwordLen < 6 || passwordLen > 50 {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidPassword))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		newUser, err := deps.Store.CreateUser(r.Context(), input.Email, input.FullName, string(hashedPassword))
		if err != nil {
			if db.IsUniqueViolation(err) {
				logx.Warn("signup conflict: email already registered", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrUserAlreadyExists))
				return
			}

			logx.Error(err, "failed to create user in database")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		tokenString, err := jwt.GenerateToken(&jwt.Payload{
			ID:       newUser.ID,
			Email:    newUser.Email,
			FullName: newUser.FullName,
		}, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "failed to generate token after signup")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": tokenString,
			"user":  deps.userResponse(newUser),
		})
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and issues a JWT token.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if identity := jwt.GetPayloadFromContext(r); identity != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAlreadyLoggedIn))
			return
		}

		var input LoginInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		dbUser, err := deps.Store.GetUserByEmail(r.Context(), input.Email)
		if err != nil {
			if db.IsNotFound(err) {
				logx.Warn("login: unknown email", "email", input.Email)
				resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
				return
			}

			logx.Error(err, "login: user fetch failed", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(dbUser.PasswordHash), []byte(input.Password)); err != nil {
			logx.Warn("login: password mismatch", "email", input.Email)
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidCredentials))
			return
		}

		token, err := jwt.GenerateToken(&jwt.Payload{
			ID:       dbUser.ID,
			Email:    dbUser.Email,
			FullName: dbUser.FullName,
		}, deps.Config.JWTSecret, jwt.UserIdentityExpiration)
		if err != nil {
			logx.Error(err, "login: jwt generation failed")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"token": token,
			"user":  deps.userResponse(dbUser),
		})
	}
}

// HandleLogout acknowledges a logout. Tokens are stateless, so the server keeps
// no session to tear down; the client discards its copy.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, nil)
	}
}

// HandleCheckAuth returns the authenticated account, refreshed from the store.
func HandleCheckAuth(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := jwt.GetPayloadFromContext(r)
		if identity == nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
			return
		}

		dbUser, err := deps.Store.GetUserByID(r.Context(), identity.ID)
		if err != nil {
			// A valid token for a deleted account reads as unauthenticated.
			if db.IsNotFound(err) {
				logx.Warn("check_auth: account no longer exists", "id", identity.ID)
				resp.RespondError(w, r, errs.NewError(errs.ErrUnauthorized))
				return
			}

			logx.Error(err, "check_auth: user fetch failed", "id", identity.ID)
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown))
			return
		}

		resp.RespondSuccess(w, r, map[string]any{
			"user": deps.userResponse(dbUser),
		})
	}
}
