// Package domain defines the core business entities of the task
// management application: users and their tasks, along with the
// validation rules and enumerated value sets those entities carry.
package domain
