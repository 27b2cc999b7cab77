package model

import "time"

// AdminUser represents an administrator account as stored in the
// `admin_users` table. Accounts are provisioned out-of-band (see the
// `admin create` command) and are read during login and on every
// authenticated request.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique, case-sensitive login name.
//  PasswordHash – bcrypt hash; the plaintext is never stored.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type AdminUser struct {
	ID           uint64    // admin_users.id
	Username     string    // admin_users.username
	PasswordHash string    // admin_users.password_hash
	CreatedAt    time.Time // admin_users.created_at
	UpdatedAt    time.Time // admin_users.updated_at
}
