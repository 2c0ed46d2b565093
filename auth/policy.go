package auth

import (
	"tgtodo/web-api/model"
	"tgtodo/web-api/security"
)

// AdminConfig is the immutable admin identity configuration, injected at
// startup instead of read from viper on every decision.
type AdminConfig struct {
	// ChatID is the Telegram chat id of the administrator account.
	ChatID string
	// Secret must additionally verify against the admin's stored password
	// hash. An id match alone never grants admin.
	Secret string
}

type Resolver struct {
	cfg   AdminConfig
	argon *security.ArgonHash
}

func NewResolver(cfg AdminConfig, argon *security.ArgonHash) *Resolver {
	return &Resolver{
		cfg:   cfg,
		argon: argon,
	}
}

// Resolve maps a live user row to the identity used for authorization
// decisions during this request.
func (r *Resolver) Resolve(u *model.User) Identity {
	role := RoleOwner

	if r.cfg.ChatID != "" && u.ID == r.cfg.ChatID {
		ok, err := r.argon.VerifyPasswd(r.cfg.Secret, u.PasswordHash)
		if err == nil && ok {
			role = RoleAdmin
		}
	}

	return Identity{
		ID:       u.ID,
		Username: u.Username,
		Role:     role,
	}
}

// CanActOnTodo gates update and delete: the invoker must own the record or
// be the admin. Orphaned records (nil owner) are admin-only.
func CanActOnTodo(id Identity, ownerID *string) bool {
	if id.IsAdmin() {
		return true
	}

	return ownerID != nil && *ownerID == id.ID
}
