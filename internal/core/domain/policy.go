package domain

// Permission identifies a gated operation of the API.
type Permission string

const (
	PermDaoRead        Permission = "dao:read"
	PermDaoCreate      Permission = "dao:create"
	PermDaoUpdate      Permission = "dao:update"
	PermDaoDelete      Permission = "dao:delete"
	PermTaskUpdate     Permission = "task:update"
	PermTaskStructural Permission = "task:structural" // add, delete, rename
	PermUserManage     Permission = "user:manage"
	PermProfileSelf    Permission = "profile:self"
	PermCommentRead    Permission = "comment:read"
	PermCommentWrite   Permission = "comment:write"
	PermDashboardRead  Permission = "dashboard:read"
	PermTemplateManage Permission = "template:manage"
)

// policy is the operation x role matrix. Anonymous callers never reach
// it: the auth middleware rejects requests without a valid identity.
var policy = map[Permission]map[Role]bool{
	PermDaoRead:        {RoleUser: true, RoleAdmin: true},
	PermDaoCreate:      {RoleAdmin: true},
	PermDaoUpdate:      {RoleUser: true, RoleAdmin: true},
	PermDaoDelete:      {RoleAdmin: true},
	PermTaskUpdate:     {RoleUser: true, RoleAdmin: true},
	PermTaskStructural: {RoleAdmin: true},
	PermUserManage:     {RoleAdmin: true},
	PermProfileSelf:    {RoleUser: true, RoleAdmin: true},
	PermCommentRead:    {RoleUser: true, RoleAdmin: true},
	PermCommentWrite:   {RoleUser: true, RoleAdmin: true},
	PermDashboardRead:  {RoleUser: true, RoleAdmin: true},
	PermTemplateManage: {RoleAdmin: true},
}

// Allowed reports whether the role may perform the operation.
func Allowed(role Role, p Permission) bool {
	return policy[p][role]
}

// CanModifyComment applies the own-or-admin rule for comment edits
// and deletions.
func CanModifyComment(actorID string, actorRole Role, comment *Comment) bool {
	if actorRole == RoleAdmin {
		return true
	}
	return comment.UserID == actorID
}

// CanDeactivateUser applies the self-protection rule: nobody, admin
// included, may deactivate their own account.
func CanDeactivateUser(actorID string, actorRole Role, targetID string) bool {
	if actorID == targetID {
		return false
	}
	return actorRole == RoleAdmin
}
