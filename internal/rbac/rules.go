package rbac

// Default policy for the authoring service. Reviewers can inspect and test
// a course; authors own the full lifecycle.
var RolePermissions = map[string][]string{
	"reviewer": {
		"course:view",
		"course:preview",
	},
	"author": {
		"course:*",
	},
	"admin": {
		"*", // everything
	},
}
