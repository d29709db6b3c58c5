package permissions

// Permission is a single project-scoped capability.
type Permission string

const (
	// Project permissions
	ViewProject   Permission = "view_project"
	UpdateProject Permission = "update_project"
	DeleteProject Permission = "delete_project"

	// Member permissions
	ViewMembers   Permission = "view_members"
	AddMembers    Permission = "add_members"
	UpdateMembers Permission = "update_members"
	RemoveMembers Permission = "remove_members"

	// Task permissions
	ViewTasks           Permission = "view_tasks"
	AddTasks            Permission = "add_tasks"
	UpdateTasks         Permission = "update_tasks"
	RemoveTasks         Permission = "remove_tasks"
	UpdateOwnTaskStatus Permission = "update_own_task_status"
	AssignOpenTask      Permission = "assign_open_task"
	UnassignOpenTask    Permission = "unassign_open_task"
)

// AllPermissions lists every defined permission.
var AllPermissions = []Permission{
	ViewProject,
	UpdateProject,
	DeleteProject,
	ViewMembers,
	AddMembers,
	UpdateMembers,
	RemoveMembers,
	ViewTasks,
	AddTasks,
	UpdateTasks,
	RemoveTasks,
	UpdateOwnTaskStatus,
	AssignOpenTask,
	UnassignOpenTask,
}

// rolePermissions is the single source of truth for role capabilities.
// Changing what a role may do means editing this table, nothing else.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleOwner: permissionSet(
		ViewProject, UpdateProject, DeleteProject,
		ViewMembers, AddMembers, UpdateMembers, RemoveMembers,
		ViewTasks, AddTasks, UpdateTasks, RemoveTasks,
		UpdateOwnTaskStatus, AssignOpenTask, UnassignOpenTask,
	),
	RoleAdmin: permissionSet(
		ViewProject, UpdateProject,
		ViewMembers, AddMembers, UpdateMembers, RemoveMembers,
		ViewTasks, AddTasks, UpdateTasks, RemoveTasks,
		UpdateOwnTaskStatus, AssignOpenTask, UnassignOpenTask,
	),
	RoleMember: permissionSet(
		ViewProject,
		ViewMembers,
		UpdateOwnTaskStatus,
	),
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}
