// Package models defines data structures for WealthFlow
package models

import "slices"

// AppState is one immutable snapshot of everything the tracker knows.
// Reducers never modify a snapshot in place; they return a new one.
type AppState struct {
	User         *User         `json:"user"`
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"` // newest first
	Categories   []Category    `json:"categories"`
	Portfolio    []Stock       `json:"portfolio"`
}

// Clone returns a copy that shares nothing mutable with s.
func (s *AppState) Clone() *AppState {
	if s == nil {
		return &AppState{}
	}
	c := &AppState{
		Accounts:     slices.Clone(s.Accounts),
		Transactions: slices.Clone(s.Transactions),
		Categories:   slices.Clone(s.Categories),
		Portfolio:    slices.Clone(s.Portfolio),
	}
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	return c
}

// WithoutUser returns a shallow copy with User cleared, as persisted.
func (s *AppState) WithoutUser() *AppState {
	c := *s
	c.User = nil
	return &c
}

// FindAccount returns the first account with id, or nil.
func (s *AppState) FindAccount(id string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// FindCategory returns the category with id, or nil.
func (s *AppState) FindCategory(id string) *Category {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return &s.Categories[i]
		}
	}
	return nil
}

// FindStock returns the holding with symbol, or nil.
func (s *AppState) FindStock(symbol string) *Stock {
	for i := range s.Portfolio {
		if s.Portfolio[i].Symbol == symbol {
			return &s.Portfolio[i]
		}
	}
	return nil
}
