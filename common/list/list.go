// Package list implements a singly linked list with a structural merge sort
package list

type node[T any] struct {
	value T
	next  *node[T]
}

// List is a singly linked list that keeps insertion order.
type List[T any] struct {
	head *node[T]
	tail *node[T]
	size int
}

// Push appends an item at the end of the list
func (l *List[T]) Push(value T) {
	n := &node[T]{value: value}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// Front returns the first item without removing it
func (l *List[T]) Front() (T, bool) {
	if l.head == nil {
		var zero T
		return zero, false
	}
	return l.head.value, true
}

// Len returns the number of items in the list
func (l *List[T]) Len() int {
	return l.size
}

// IsEmpty checks if the list is empty
func (l *List[T]) IsEmpty() bool {
	return l.size == 0
}

// Slice copies the items, in list order, into a new slice.
func (l *List[T]) Slice() []T {
	items := make([]T, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		items = append(items, n.value)
	}
	return items
}

// Truncate keeps the first n items and drops the rest. A non-positive n keeps everything.
func (l *List[T]) Truncate(n int) {
	if n <= 0 || n >= l.size {
		return
	}
	cur := l.head
	for i := 1; i < n; i++ {
		cur = cur.next
	}
	cur.next = nil
	l.tail = cur
	l.size = n
}

// MergeSort sorts the list in place. The list is halved with a fast/slow walk
// that leaves the extra node of an odd length in the first half, and the two
// sorted halves are merged so that the head of the first half is emitted
// whenever keepFirst(firstHead, secondHead) holds.
func (l *List[T]) MergeSort(keepFirst func(first, second T) bool) {
	l.head = mergeSort(l.head, keepFirst)
	l.tail = nil
	for n := l.head; n != nil; n = n.next {
		l.tail = n
	}
}

func mergeSort[T any](head *node[T], keepFirst func(first, second T) bool) *node[T] {
	if head == nil || head.next == nil {
		return head
	}
	second := split(head)
	return merge(mergeSort(head, keepFirst), mergeSort(second, keepFirst), keepFirst)
}

// split cuts the list after its middle node and returns the second half.
func split[T any](head *node[T]) *node[T] {
	fast, slow := head, head
	for fast != nil && fast.next != nil {
		fast = fast.next.next
		if fast != nil {
			slow = slow.next
		}
	}
	second := slow.next
	slow.next = nil
	return second
}

func merge[T any](first, second *node[T], keepFirst func(first, second T) bool) *node[T] {
	var sentinel node[T]
	tail := &sentinel
	for first != nil && second != nil {
		if keepFirst(first.value, second.value) {
			tail.next = first
			first = first.next
		} else {
			tail.next = second
			second = second.next
		}
		tail = tail.next
	}
	if first != nil {
		tail.next = first
	} else {
		tail.next = second
	}
	return sentinel.next
}
