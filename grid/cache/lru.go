package cache

// lruList maintains eviction order with a doubly linked list plus an index
// map for O(1) touch and removal.
type lruList struct {
	head  *lruNode
	tail  *lruNode
	nodes map[string]*lruNode
}

type lruNode struct {
	key        string
	prev, next *lruNode
}

func newLRUList() *lruList {
	head := &lruNode{}
	tail := &lruNode{}
	head.next = tail
	tail.prev = head
	return &lruList{head: head, tail: tail, nodes: make(map[string]*lruNode)}
}

// Touch moves a key to the front, inserting it if new.
func (l *lruList) Touch(key string) {
	if node, ok := l.nodes[key]; ok {
		l.unlink(node)
		l.pushFront(node)
		return
	}
	node := &lruNode{key: key}
	l.nodes[key] = node
	l.pushFront(node)
}

// Remove deletes a key from the list.
func (l *lruList) Remove(key string) {
	if node, ok := l.nodes[key]; ok {
		l.unlink(node)
		delete(l.nodes, key)
	}
}

// Oldest returns the least recently touched key, or "" when empty.
func (l *lruList) Oldest() string {
	if l.tail.prev == l.head {
		return ""
	}
	return l.tail.prev.key
}

func (l *lruList) Len() int {
	return len(l.nodes)
}

func (l *lruList) pushFront(node *lruNode) {
	node.next = l.head.next
	node.prev = l.head
	l.head.next.prev = node
	l.head.next = node
}

func (l *lruList) unlink(node *lruNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}
