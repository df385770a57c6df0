package conf

// BackendVersion current version of the backend
const BackendVersion = "1.2.0"

// RequiredDBVersion the database schema version this build expects
const RequiredDBVersion = "1.2.0"
