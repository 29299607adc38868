package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"assignment:view",
		"player:open",
		"player:answer",
		"attempt:submit",
		"grades:view-own",
		"books:view",
		"flashcards:view",
		"tutor:chat",
		"user:change_password",
	},
	"teacher": {
		"assignment:view",
		"assignment:create",
		"assignment:generate",
		"player:open",
		"grades:view-all",
		"books:view",
		"flashcards:view",
		"tutor:chat",
		"users:list",
		"groups:list",
		"user:change_password",
	},
	"admin": {
		"*", // everything
	},
}
