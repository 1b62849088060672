package userrepo

const (
	sqlCreateUser = `INSERT INTO users (
			id, email, name, password_digest, plan,
			ai_generations_used, ai_generations_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING *;`

	sqlGetUserByEmail = `SELECT * FROM users WHERE LOWER(email) = $1 LIMIT 1;`

	sqlGetUserByID = `SELECT * FROM users WHERE id = $1 LIMIT 1;`

	sqlUpdateUserPlan = `UPDATE users SET plan = $2 WHERE id = $1 RETURNING *;`

	sqlIncUserGenerations = `UPDATE users
		SET ai_generations_used = ai_generations_used + 1
		WHERE id = $1 RETURNING *;`
)
