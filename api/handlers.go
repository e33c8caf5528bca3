package api

import (
	"github.com/taskboard/backend/auth"
	"github.com/taskboard/backend/database"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler           authHandler
	roleHandler           roleHandler
	userHandler           userHandler
	userProfileHandler    userProfileHandler
	projectHandler        projectHandler
	projectMemberHandler  projectMemberHandler
	taskItemHandler       taskItemHandler
	taskAssignmentHandler taskAssignmentHandler
	tagHandler            tagHandler
	taskTagHandler        taskTagHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens auth.TokenService) *routeHandlers {
	return &routeHandlers{
		authHandler:           newAuthHandler(database.UserRepo(), database.RoleRepo(), tokens),
		roleHandler:           newRoleHandler(database.RoleRepo()),
		userHandler:           newUserHandler(database.UserRepo(), database.RoleRepo()),
		userProfileHandler:    newUserProfileHandler(database.UserProfileRepo(), database.UserRepo()),
		projectHandler:        newProjectHandler(database.ProjectRepo(), database.ProjectMemberRepo(), database.UserRepo()),
		projectMemberHandler:  newProjectMemberHandler(database.ProjectMemberRepo(), database.ProjectRepo(), database.UserRepo()),
		taskItemHandler:       newTaskItemHandler(database.TaskItemRepo(), database.ProjectRepo(), database.UserRepo()),
		taskAssignmentHandler: newTaskAssignmentHandler(database.TaskAssignmentRepo(), database.TaskItemRepo(), database.UserRepo()),
		tagHandler:            newTagHandler(database.TagRepo()),
		taskTagHandler:        newTaskTagHandler(database.TaskTagRepo(), database.TaskItemRepo(), database.TagRepo()),
	}
}
