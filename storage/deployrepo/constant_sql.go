package deployrepo

const (
	sqlCreateDeployment = `INSERT INTO deployments (
			id, app_id, user_id, provider, status, url, environment,
			error_message, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING *;`

	sqlGetDeploymentByID = `SELECT * FROM deployments WHERE id = $1 AND user_id = $2 LIMIT 1;`

	sqlListDeployments = `SELECT * FROM deployments
		WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2;`

	sqlListDeploymentsByApp = `SELECT * FROM deployments
		WHERE user_id = $1 AND app_id = $2 ORDER BY created_at DESC LIMIT $3;`

	sqlUpdateDeployment = `UPDATE deployments SET
			status = $3, url = $4, error_message = $5, completed_at = $6
		WHERE id = $1 AND user_id = $2 RETURNING *;`
)
