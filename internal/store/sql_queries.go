package store

import (
	sq "github.com/Masterminds/squirrel"
)

// psql is the shared squirrel builder configured for PostgreSQL placeholders.
// Static queries stay as plain consts below; squirrel is used where the query
// shape depends on runtime input (partial updates, filtered listings).
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	userColumns = `id, username, email, phone_number, hashed_password, is_verified, is_superuser, status, twofa_secret, date_created, date_updated`

	createUser = `INSERT INTO users (id, username, email, phone_number, hashed_password, is_verified, is_superuser, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + userColumns + `;`

	getUserByID = `SELECT ` + userColumns + `
	FROM users
	WHERE id = $1;`

	getUserByLogin = `SELECT ` + userColumns + `
	FROM users
	WHERE username = $1 OR email = $1;`

	updateUserStatus = `UPDATE users
	SET status = $2, date_updated = now()
	WHERE id = $1;`

	deleteUser = `DELETE FROM users
	WHERE id = $1;`

	superuserExists = `SELECT EXISTS (SELECT 1 FROM users WHERE is_superuser IS TRUE);`

	sessionColumns = `id, user_id, refresh_token, user_agent, ip_address, is_valid, expires_at, date_created, date_updated`

	createSession = `INSERT INTO sessions (id, user_id, refresh_token, user_agent, ip_address, is_valid, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + sessionColumns + `;`

	findValidSession = `SELECT ` + sessionColumns + `
	FROM sessions
	WHERE user_id = $1 AND refresh_token = $2 AND is_valid IS TRUE;`

	invalidateSession = `UPDATE sessions
	SET is_valid = FALSE, date_updated = now()
	WHERE user_id = $1 AND refresh_token = $2 AND is_valid IS TRUE;`

	invalidateUserSessions = `UPDATE sessions
	SET is_valid = FALSE, date_updated = now()
	WHERE user_id = $1 AND is_valid IS TRUE;`

	deleteExpiredSessions = `DELETE FROM sessions
	WHERE expires_at < now();`

	staffColumns = `id, user_id, role, department, date_created, date_updated`

	createStaff = `INSERT INTO staffs (id, user_id, role, department)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + staffColumns + `;`

	getStaffByID = `SELECT ` + staffColumns + `
	FROM staffs
	WHERE id = $1;`

	getStaffByUserID = `SELECT ` + staffColumns + `
	FROM staffs
	WHERE user_id = $1;`

	listStaff = `SELECT ` + staffColumns + `
	FROM staffs
	ORDER BY date_created
	LIMIT $1 OFFSET $2;`

	deleteStaff = `DELETE FROM staffs
	WHERE id = $1;`

	superuserRoleExists = `SELECT EXISTS (SELECT 1 FROM staffs WHERE role = 'superuser');`

	superuserDepartmentExists = `SELECT EXISTS (SELECT 1 FROM staffs WHERE department = 'superuser');`

	attachStaffPermission = `INSERT INTO staff_permissions (staff_id, permission_id)
	VALUES ($1, $2);`

	detachStaffPermissions = `DELETE FROM staff_permissions
	WHERE staff_id = $1;`

	getStaffPermissions = `SELECT p.id, p.name, p.date_created, p.date_updated
	FROM permissions p
	JOIN staff_permissions sp ON sp.permission_id = p.id
	WHERE sp.staff_id = $1
	ORDER BY p.name;`

	permissionColumns = `id, name, date_created, date_updated`

	createPermission = `INSERT INTO permissions (id, name)
	VALUES ($1, $2)
	RETURNING ` + permissionColumns + `;`

	getPermissionByID = `SELECT ` + permissionColumns + `
	FROM permissions
	WHERE id = $1;`

	listPermissions = `SELECT ` + permissionColumns + `
	FROM permissions
	ORDER BY name;`

	renamePermission = `UPDATE permissions
	SET name = $2, date_updated = now()
	WHERE id = $1
	RETURNING ` + permissionColumns + `;`

	deletePermission = `DELETE FROM permissions
	WHERE id = $1;`

	apiKeyColumns = `id, user_id, key_hash, secret, is_active, expires_at, date_created, date_updated`

	createAPIKey = `INSERT INTO api_keys (id, user_id, key_hash, secret, is_active, expires_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + apiKeyColumns + `;`

	getAPIKeyByID = `SELECT ` + apiKeyColumns + `
	FROM api_keys
	WHERE id = $1;`

	getAPIKeyByHash = `SELECT ` + apiKeyColumns + `
	FROM api_keys
	WHERE key_hash = $1;`

	listAPIKeysByUser = `SELECT ` + apiKeyColumns + `
	FROM api_keys
	WHERE user_id = $1
	ORDER BY date_created;`

	deleteAPIKey = `DELETE FROM api_keys
	WHERE id = $1;`

	attachAPIKeyPermission = `INSERT INTO api_key_permissions (api_key_id, permission_id)
	VALUES ($1, $2);`

	detachAPIKeyPermissions = `DELETE FROM api_key_permissions
	WHERE api_key_id = $1;`

	getAPIKeyPermissions = `SELECT p.id, p.name, p.date_created, p.date_updated
	FROM permissions p
	JOIN api_key_permissions kp ON kp.permission_id = p.id
	WHERE kp.api_key_id = $1
	ORDER BY p.name;`

	activityLogColumns = `id, user_id, activity_type, description, ip_address, user_agent, logged_at, date_created, date_updated`

	createActivityLog = `INSERT INTO activity_logs (id, user_id, activity_type, description, ip_address, user_agent, logged_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + activityLogColumns + `;`

	kycColumns = `id, user_id, full_name, date_of_birth, nationality, address_line1, address_line2, city, state, postal_code, country, document_type, document_number, document_image_url, selfie_image_url, kyc_notes, status, date_created, date_updated`

	createKYC = `INSERT INTO kyc_verifications (id, user_id, full_name, date_of_birth, nationality, address_line1, address_line2, city, state, postal_code, country, document_type, document_number, document_image_url, selfie_image_url, kyc_notes, status)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING ` + kycColumns + `;`

	getLatestKYCByUserID = `SELECT ` + kycColumns + `
	FROM kyc_verifications
	WHERE user_id = $1
	ORDER BY date_created DESC
	LIMIT 1;`

	listKYCByUserID = `SELECT ` + kycColumns + `
	FROM kyc_verifications
	WHERE user_id = $1
	ORDER BY date_created DESC;`

	updateKYCStatus = `UPDATE kyc_verifications
	SET status = $2, kyc_notes = $3, date_updated = now()
	WHERE id = $1
	RETURNING ` + kycColumns + `;`
)
