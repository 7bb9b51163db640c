// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package shmq

import (
	"reflect"
	"unsafe"

	"github.com/outofforest/photon"
	"github.com/pkg/errors"

	"code.hybscloud.com/shmq/concur"
)

// blockAlign is the alignment requested for every data block.
const blockAlign = concur.CacheLineSize

// block is the single allocation backing a queue: the header immediately
// followed by capacity slots, the first of which is declared inline.
type block[T any] struct {
	hdr   concur.Header
	first concur.Slot[T]
}

// sizeOf returns the byte size of a block with capacity slots.
func sizeOf[T any](capacity uint64) uintptr {
	var b block[T]
	return unsafe.Sizeof(b) + uintptr(capacity-1)*unsafe.Sizeof(b.first)
}

// maxCapacity is the largest capacity whose block size fits in uintptr.
func maxCapacity[T any]() uint64 {
	var b block[T]
	return uint64((^uintptr(0)-unsafe.Sizeof(b))/unsafe.Sizeof(b.first)) + 1
}

func (b *block[T]) byteSize() uintptr {
	return sizeOf[T](b.hdr.Cap())
}

func (b *block[T]) slots() []concur.Slot[T] {
	return photon.SliceFromPointer[concur.Slot[T]](unsafe.Pointer(&b.first), int(b.hdr.Cap()))
}

// construct builds a block in the raw memory at p. Slots are initialized in
// index order; if an element fails to construct, the elements constructed
// so far are destroyed in reverse order and construct returns an error.
func construct[T any](p unsafe.Pointer, capacity uint64) (b *block[T], err error) {
	clear(photon.SliceFromPointer[byte](p, int(sizeOf[T](capacity))))
	b = photon.FromPointer[block[T]](p)
	b.hdr.Init(capacity)
	slots := b.slots()

	i := 0
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrConstruct, "slot %d: panic: %v", i, r)
		}
		if err != nil {
			destroyAll(slots[:i])
			b = nil
		}
	}()
	for ; i < len(slots); i++ {
		slots[i].Init()
		if c, ok := any(slots[i].Elem()).(Constructor); ok {
			if cerr := c.Construct(); cerr != nil {
				return nil, errors.Wrapf(ErrConstruct, "slot %d: %v", i, cerr)
			}
		}
	}
	return b, nil
}

// destroy tears down every slot regardless of its state.
func (b *block[T]) destroy() error {
	return destroyAll(b.slots())
}

// destroyAll destroys slots in reverse order and returns the first failure.
func destroyAll[T any](slots []concur.Slot[T]) error {
	var err error
	for i := len(slots) - 1; i >= 0; i-- {
		if derr := destroyElem(slots[i].Elem()); derr != nil && err == nil {
			err = errors.Wrapf(derr, "slot %d", i)
		}
	}
	return err
}

func destroyElem[T any](elem *T) (err error) {
	d, ok := any(elem).(Destructor)
	if !ok {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("destroy panicked: %v", r)
		}
	}()
	d.Destroy()
	return nil
}

// pointerFree reports whether values of t hold no Go pointers, so they can
// live in memory the garbage collector does not scan.
func pointerFree(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Array:
		return t.Len() == 0 || pointerFree(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if !pointerFree(t.Field(i).Type) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
