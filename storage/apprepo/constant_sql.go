package apprepo

const (
	sqlCreateApp = `INSERT INTO apps (
			id, user_id, name, description, features, entities,
			target_audience, framework, styling, status,
			generated_code, deployment_url, deployment_provider,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING *;`

	sqlGetAppByID = `SELECT * FROM apps WHERE id = $1 AND user_id = $2 LIMIT 1;`

	sqlListApps = `SELECT * FROM apps WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`

	sqlUpdateApp = `UPDATE apps SET
			name = $3, description = $4, features = $5, entities = $6,
			target_audience = $7, framework = $8, styling = $9, status = $10,
			generated_code = $11, deployment_url = $12, deployment_provider = $13,
			updated_at = $14
		WHERE id = $1 AND user_id = $2 RETURNING *;`

	sqlDeleteApp = `DELETE FROM apps WHERE id = $1 AND user_id = $2 RETURNING id;`
)
