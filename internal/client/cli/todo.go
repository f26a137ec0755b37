package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/dailydo/internal/client/api"
)

func formatTodo(t *api.Todo) string {
	mark := " "
	if t.IsCompleted {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s  %s", mark, t.ID, t.Content)
}

// List prints the caller's tasks, one per line.
func (a *App) List(ctx context.Context) error {
	todos, err := a.api.ListTodos(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	for _, item := range todos {
		printlnFn(formatTodo(&item))
	}
	return nil
}

// Add prompts for task content and creates the task.
func (a *App) Add(ctx context.Context) error {
	content, err := getSimpleText(a.reader, "Enter task", os.Stdout)
	if err != nil {
		return err
	}

	todo, err := a.api.CreateTodo(ctx, content, false)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Created:", formatTodo(todo))
	return nil
}

// Show prompts for a task ID and prints the task.
func (a *App) Show(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	todo, err := a.api.GetTodo(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn(formatTodo(todo))
	return nil
}

// Toggle flips a task's completed state, keeping its content.
func (a *App) Toggle(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	todo, err := a.api.GetTodo(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	updated, err := a.api.UpdateTodo(ctx, id, todo.Content, !todo.IsCompleted)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Updated:", formatTodo(updated))
	return nil
}

// Delete prompts for a task ID and removes the task.
func (a *App) Delete(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.api.DeleteTodo(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Task successfully deleted")
	return nil
}
