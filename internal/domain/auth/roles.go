package auth

const (
	RoleUsuario = "USUARIO"
	RoleAdmin   = "ADMIN"
	RoleRoot    = "ROOT"
)

// PuedeAprobar: only admins resolve pending benefits.
func PuedeAprobar(rol string) bool {
	return rol == RoleAdmin || rol == RoleRoot
}

// PuedeVerTodo: admins list every employee's requests; users only their own.
func PuedeVerTodo(rol string) bool {
	return rol == RoleAdmin || rol == RoleRoot
}

// PuedeAdministrarUsuarios: ROOT manages accounts and role assignment.
func PuedeAdministrarUsuarios(rol string) bool {
	return rol == RoleRoot
}

func RolValido(rol string) bool {
	switch rol {
	case RoleUsuario, RoleAdmin, RoleRoot:
		return true
	}
	return false
}
