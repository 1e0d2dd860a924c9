// Package mapping turns raw game client records into the server's models.
//
// Every mapper has the shape func(interfaces.IGameStateSource) (T, error) so
// it can be handed to the game thread as is. Mappers are pure apart from the
// reads they make on the source.
package mapping
