package list

import (
	"fmt"
	"strconv"

	"github.com/cornichon-db/cornichon/lib/store"
	"github.com/spf13/cobra"
)

var (
	createCmd = &cobra.Command{
		Use:   "create [key]",
		Short: "Creates a new empty list under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			if _, err := listStore.ListCreate(key); err != nil {
				return err
			}
			fmt.Println("create successfully")
			return listStore.Dump()
		},
	}
	addCmd = &cobra.Command{
		Use:   "add [key] [value]",
		Short: "Appends a value to a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			if err := listStore.ListAdd(key, value); err != nil {
				return err
			}
			fmt.Println("add successfully")
			return listStore.Dump()
		},
	}
	extendCmd = &cobra.Command{
		Use:   "extend [key] [value...]",
		Short: "Appends multiple values to a list",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			values := make([]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				values = append(values, arg)
			}
			if err := listStore.ListExtend(key, values...); err != nil {
				return err
			}
			fmt.Printf("extended by %d values\n", len(values))
			return listStore.Dump()
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key] [index]",
		Short: "Reads the list element at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			value, err := store.ListGet[any](listStore, key, index)
			if err != nil {
				return err
			}
			fmt.Printf("key=%s, index=%d, value=%v\n", key, index, value)
			return nil
		},
	}
	allCmd = &cobra.Command{
		Use:   "all [key]",
		Short: "Prints all elements of a list in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			items, err := listStore.ListIter(key)
			if err != nil {
				return err
			}
			index := 0
			for item := range items {
				var value any
				if err := item.Decode(&value); err != nil {
					return err
				}
				fmt.Printf("%d: %v\n", index, value)
				index++
			}
			return nil
		},
	}
	lenCmd = &cobra.Command{
		Use:   "len [key]",
		Short: "Prints the number of elements in a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			fmt.Printf("key=%s, len=%d\n", key, listStore.ListLen(key))
			return nil
		},
	}
	popCmd = &cobra.Command{
		Use:   "pop [key] [index]",
		Short: "Removes and prints the list element at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			value, err := store.ListPop[any](listStore, key, index)
			if err != nil {
				return err
			}
			fmt.Printf("popped value=%v\n", value)
			return listStore.Dump()
		},
	}
	remValCmd = &cobra.Command{
		Use:   "remval [key] [value]",
		Short: "Removes the first occurrence of a value from a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]
			removed, err := listStore.ListRemoveValue(key, value)
			if err != nil {
				return err
			}
			if removed {
				fmt.Println("remove successfully")
			} else {
				fmt.Printf("value=%s not found in list %s\n", value, key)
			}
			return listStore.Dump()
		},
	}
	remIdxCmd = &cobra.Command{
		Use:   "remidx [key] [index]",
		Short: "Removes the list element at an index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %w", err)
			}
			if err := listStore.ListRemoveIndex(key, index); err != nil {
				return err
			}
			fmt.Println("remove successfully")
			return listStore.Dump()
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a list and all its elements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			count, err := listStore.ListDelete(key)
			if err != nil {
				return err
			}
			fmt.Printf("deleted list with %d elements\n", count)
			return listStore.Dump()
		},
	}
)
