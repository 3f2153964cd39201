package auth

import "testing"

func TestPermisosPorRol(t *testing.T) {
	casos := []struct {
		rol        string
		aprueba    bool
		veTodo     bool
		administra bool
	}{
		{RoleUsuario, false, false, false},
		{RoleAdmin, true, true, false},
		{RoleRoot, true, true, true},
		{"INVITADO", false, false, false},
	}
	for _, c := range casos {
		if got := PuedeAprobar(c.rol); got != c.aprueba {
			t.Fatalf("PuedeAprobar(%q) = %v, want %v", c.rol, got, c.aprueba)
		}
		if got := PuedeVerTodo(c.rol); got != c.veTodo {
			t.Fatalf("PuedeVerTodo(%q) = %v, want %v", c.rol, got, c.veTodo)
		}
		if got := PuedeAdministrarUsuarios(c.rol); got != c.administra {
			t.Fatalf("PuedeAdministrarUsuarios(%q) = %v, want %v", c.rol, got, c.administra)
		}
	}
}

func TestRolValido(t *testing.T) {
	for _, rol := range []string{RoleUsuario, RoleAdmin, RoleRoot} {
		if !RolValido(rol) {
			t.Fatalf("expected %q to be valid", rol)
		}
	}
	if RolValido("SUPERVISOR") {
		t.Fatal("unknown role must be invalid")
	}
}
