package models

// Role is the permission level assigned per (organization, user) pair,
// ordered by decreasing permission breadth.
type Role string

const (
	RoleOwner      Role = "OWNER"
	RoleDispatcher Role = "DISPATCHER"
	RoleCrewLead   Role = "CREW_LEAD"
	RoleCrewTech   Role = "CREW_TECH"
	RoleCustomer   Role = "CUSTOMER"
)
