package store

import (
	"storefront/model"
)

type treeNode struct {
	key     int
	product models.Product
	left    *treeNode
	right   *treeNode
}

// ProductTree is a binary search tree keyed by product id. Inserts happen
// once at bootstrap; a key that already exists is never updated in place.
// The tree does not rebalance.
type ProductTree struct {
	root *treeNode
	size int
}

// NewProductTree returns an empty index.
func NewProductTree() *ProductTree {
	return &ProductTree{}
}

// Insert places p under key. Duplicate keys are ignored; the first write wins.
func (t *ProductTree) Insert(key int, p models.Product) {
	if t.root == nil {
		t.root = &treeNode{key: key, product: p}
		t.size++
		return
	}
	n := t.root
	for {
		switch {
		case key < n.key:
			if n.left == nil {
				n.left = &treeNode{key: key, product: p}
				t.size++
				return
			}
			n = n.left
		case key > n.key:
			if n.right == nil {
				n.right = &treeNode{key: key, product: p}
				t.size++
				return
			}
			n = n.right
		default:
			return
		}
	}
}

// Search returns the product stored under key. The second return value is
// false when the key is absent; absence is not an error.
func (t *ProductTree) Search(key int) (models.Product, bool) {
	n := t.root
	for n != nil {
		switch {
		case key < n.key:
			n = n.left
		case key > n.key:
			n = n.right
		default:
			return n.product, true
		}
	}
	return models.Product{}, false
}

// InOrder returns all products ascending by key.
func (t *ProductTree) InOrder() []models.Product {
	out := make([]models.Product, 0, t.size)
	var walk func(*treeNode)
	walk = func(n *treeNode) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.product)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// Len returns the number of stored products.
func (t *ProductTree) Len() int {
	return t.size
}
