package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/taskboard/backend/auth"
)

// setupRoutes wires every route group. Paths keep the capitalized entity
// segments of the original wire contract. Role gating happens per route via
// the policy table; ownership checks live inside the handlers.
func setupRoutes(r chi.Router, handlers *routeHandlers, mw authMiddleware) {
	r.Route("/api", func(r chi.Router) {
		// Auth endpoints, reachable without a bearer token
		r.Post("/auth/register", handlers.authHandler.register())
		r.Post("/auth/login", handlers.authHandler.login())

		// Everything else requires authentication
		r.Group(func(r chi.Router) {
			r.Use(mw.authenticate)

			r.Route("/Roles", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceRoles, auth.ActionRead)).Get("/", handlers.roleHandler.getAllRoles())
				r.With(mw.requireRole(auth.ResourceRoles, auth.ActionRead)).Get("/{roleID}", handlers.roleHandler.getRole())
				r.With(mw.requireRole(auth.ResourceRoles, auth.ActionCreate)).Post("/", handlers.roleHandler.createRole())
				r.With(mw.requireRole(auth.ResourceRoles, auth.ActionUpdate)).Put("/{roleID}", handlers.roleHandler.updateRole())
				r.With(mw.requireRole(auth.ResourceRoles, auth.ActionDelete)).Delete("/{roleID}", handlers.roleHandler.deleteRole())
			})

			r.Route("/Users", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceUsers, auth.ActionRead)).Get("/", handlers.userHandler.getAllUsers())
				r.With(mw.requireRole(auth.ResourceUsers, auth.ActionRead)).Get("/{userID}", handlers.userHandler.getUser())
				r.With(mw.requireRole(auth.ResourceUsers, auth.ActionCreate)).Post("/", handlers.userHandler.createUser())
				r.With(mw.requireRole(auth.ResourceUsers, auth.ActionUpdate)).Put("/{userID}", handlers.userHandler.updateUser())
				r.With(mw.requireRole(auth.ResourceUsers, auth.ActionUpdate)).Patch("/{userID}", handlers.userHandler.patchUser())
				r.With(mw.requireRole(auth.ResourceUsers, auth.ActionDelete)).Delete("/{userID}", handlers.userHandler.deleteUser())
			})

			r.Route("/UserProfiles", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceUserProfiles, auth.ActionRead)).Get("/", handlers.userProfileHandler.getAllProfiles())
				r.With(mw.requireRole(auth.ResourceUserProfiles, auth.ActionRead)).Get("/{userID}", handlers.userProfileHandler.getProfile())
				r.With(mw.requireRole(auth.ResourceUserProfiles, auth.ActionCreate)).Post("/", handlers.userProfileHandler.createProfile())
				r.With(mw.requireRole(auth.ResourceUserProfiles, auth.ActionUpdate)).Put("/{userID}", handlers.userProfileHandler.updateProfile())
				r.With(mw.requireRole(auth.ResourceUserProfiles, auth.ActionUpdate)).Patch("/{userID}", handlers.userProfileHandler.patchProfile())
				r.With(mw.requireRole(auth.ResourceUserProfiles, auth.ActionDelete)).Delete("/{userID}", handlers.userProfileHandler.deleteProfile())
			})

			r.Route("/Projects", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceProjects, auth.ActionRead)).Get("/", handlers.projectHandler.getAllProjects())
				r.With(mw.requireRole(auth.ResourceProjects, auth.ActionRead)).Get("/{projectID}", handlers.projectHandler.getProject())
				r.With(mw.requireRole(auth.ResourceProjects, auth.ActionCreate)).Post("/", handlers.projectHandler.createProject())
				r.With(mw.requireRole(auth.ResourceProjects, auth.ActionUpdate)).Put("/{projectID}", handlers.projectHandler.updateProject())
				r.With(mw.requireRole(auth.ResourceProjects, auth.ActionUpdate)).Patch("/{projectID}", handlers.projectHandler.patchProject())
				r.With(mw.requireRole(auth.ResourceProjects, auth.ActionDelete)).Delete("/{projectID}", handlers.projectHandler.deleteProject())
			})

			r.Route("/ProjectMembers", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceProjectMembers, auth.ActionRead)).Get("/", handlers.projectMemberHandler.getAllMembers())
				r.With(mw.requireRole(auth.ResourceProjectMembers, auth.ActionRead)).Get("/{projectID}/{userID}", handlers.projectMemberHandler.getMember())
				r.With(mw.requireRole(auth.ResourceProjectMembers, auth.ActionCreate)).Post("/", handlers.projectMemberHandler.createMember())
				r.With(mw.requireRole(auth.ResourceProjectMembers, auth.ActionUpdate)).Put("/{projectID}/{userID}", handlers.projectMemberHandler.updateMember())
				r.With(mw.requireRole(auth.ResourceProjectMembers, auth.ActionDelete)).Delete("/{projectID}/{userID}", handlers.projectMemberHandler.deleteMember())
			})

			r.Route("/TaskItems", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceTaskItems, auth.ActionRead)).Get("/", handlers.taskItemHandler.getAllTaskItems())
				r.With(mw.requireRole(auth.ResourceTaskItems, auth.ActionRead)).Get("/{taskItemID}", handlers.taskItemHandler.getTaskItem())
				r.With(mw.requireRole(auth.ResourceTaskItems, auth.ActionCreate)).Post("/", handlers.taskItemHandler.createTaskItem())
				r.With(mw.requireRole(auth.ResourceTaskItems, auth.ActionUpdate)).Put("/{taskItemID}", handlers.taskItemHandler.updateTaskItem())
				r.With(mw.requireRole(auth.ResourceTaskItems, auth.ActionDelete)).Delete("/{taskItemID}", handlers.taskItemHandler.deleteTaskItem())
			})

			r.Route("/TaskAssignments", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceTaskAssignments, auth.ActionRead)).Get("/", handlers.taskAssignmentHandler.getAllAssignments())
				r.With(mw.requireRole(auth.ResourceTaskAssignments, auth.ActionRead)).Get("/{assignmentID}", handlers.taskAssignmentHandler.getAssignment())
				r.With(mw.requireRole(auth.ResourceTaskAssignments, auth.ActionCreate)).Post("/", handlers.taskAssignmentHandler.createAssignment())
				r.With(mw.requireRole(auth.ResourceTaskAssignments, auth.ActionUpdate)).Put("/{assignmentID}", handlers.taskAssignmentHandler.updateAssignment())
				r.With(mw.requireRole(auth.ResourceTaskAssignments, auth.ActionDelete)).Delete("/{assignmentID}", handlers.taskAssignmentHandler.deleteAssignment())
			})

			r.Route("/Tags", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceTags, auth.ActionRead)).Get("/", handlers.tagHandler.getAllTags())
				r.With(mw.requireRole(auth.ResourceTags, auth.ActionRead)).Get("/{tagID}", handlers.tagHandler.getTag())
				r.With(mw.requireRole(auth.ResourceTags, auth.ActionCreate)).Post("/", handlers.tagHandler.createTag())
				r.With(mw.requireRole(auth.ResourceTags, auth.ActionUpdate)).Put("/{tagID}", handlers.tagHandler.updateTag())
				r.With(mw.requireRole(auth.ResourceTags, auth.ActionDelete)).Delete("/{tagID}", handlers.tagHandler.deleteTag())
			})

			r.Route("/TaskTags", func(r chi.Router) {
				r.With(mw.requireRole(auth.ResourceTaskTags, auth.ActionRead)).Get("/", handlers.taskTagHandler.getAllTaskTags())
				r.With(mw.requireRole(auth.ResourceTaskTags, auth.ActionRead)).Get("/{taskItemID}/{tagID}", handlers.taskTagHandler.getTaskTag())
				r.With(mw.requireRole(auth.ResourceTaskTags, auth.ActionCreate)).Post("/", handlers.taskTagHandler.createTaskTag())
				r.With(mw.requireRole(auth.ResourceTaskTags, auth.ActionUpdate)).Patch("/{taskItemID}/{tagID}", handlers.taskTagHandler.patchTaskTag())
				r.With(mw.requireRole(auth.ResourceTaskTags, auth.ActionDelete)).Delete("/{taskItemID}/{tagID}", handlers.taskTagHandler.deleteTaskTag())
			})
		})
	})
}
