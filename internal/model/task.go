package model

type Task struct {
	ID          int
	Title       string
	Description string
	Points      int
	Type        string
	Icon        string
	Active      bool
}
