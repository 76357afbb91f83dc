package models

import "testing"

func TestCategorySlugGenerated(t *testing.T) {
	conn := testDB(t)
	c := &Category{Name: "Home Cleaning"}
	if err := conn.Create(c).Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.Slug != "home-cleaning" {
		t.Errorf("slug = %q, want home-cleaning", c.Slug)
	}
}

func TestCategoryWouldCycle(t *testing.T) {
	conn := testDB(t)

	root := &Category{Name: "Home"}
	if err := conn.Create(root).Error; err != nil {
		t.Fatalf("create root: %v", err)
	}
	child := &Category{Name: "Cleaning", ParentCategoryID: &root.ID}
	if err := conn.Create(child).Error; err != nil {
		t.Fatalf("create child: %v", err)
	}
	grandchild := &Category{Name: "Deep Cleaning Services", ParentCategoryID: &child.ID}
	if err := conn.Create(grandchild).Error; err != nil {
		t.Fatalf("create grandchild: %v", err)
	}

	// Re-parenting the root under its own grandchild closes a loop.
	cycle, err := root.WouldCycle(conn, grandchild.ID)
	if err != nil {
		t.Fatalf("WouldCycle: %v", err)
	}
	if !cycle {
		t.Error("expected cycle when parenting root under its grandchild")
	}

	// Self-parenting is a cycle of length one.
	cycle, err = child.WouldCycle(conn, child.ID)
	if err != nil {
		t.Fatalf("WouldCycle: %v", err)
	}
	if !cycle {
		t.Error("expected self-parenting to count as a cycle")
	}

	// A sibling parent is fine.
	other := &Category{Name: "Repairs"}
	if err := conn.Create(other).Error; err != nil {
		t.Fatalf("create other: %v", err)
	}
	cycle, err = child.WouldCycle(conn, other.ID)
	if err != nil {
		t.Fatalf("WouldCycle: %v", err)
	}
	if cycle {
		t.Error("unrelated parent must not report a cycle")
	}
}
