package gql

// Schema повторяет контракт relay-фронтенда TodoMVC:
// Node-интерфейс, viewer и шесть мутаций с clientMutationId
const Schema = `
	schema {
		query: Query
		mutation: Mutation
	}

	interface Node {
		id: ID!
	}

	type Query {
		viewer: User
		node(id: ID!): Node
	}

	type User implements Node {
		id: ID!
		todos(status: String = "any", after: String, before: String, first: Int, last: Int): TodoConnection
		totalCount: Int!
		completedCount: Int!
	}

	type Todo implements Node {
		id: ID!
		text: String!
		complete: Boolean!
		displayOrder: Int!
	}

	type TodoConnection {
		pageInfo: PageInfo!
		edges: [TodoEdge!]!
	}

	type TodoEdge {
		node: Todo
		cursor: String!
	}

	type PageInfo {
		hasNextPage: Boolean!
		hasPreviousPage: Boolean!
		startCursor: String
		endCursor: String
	}

	type Mutation {
		addTodo(input: AddTodoInput!): AddTodoPayload
		changeTodoStatus(input: ChangeTodoStatusInput!): ChangeTodoStatusPayload
		markAllTodos(input: MarkAllTodosInput!): MarkAllTodosPayload
		removeCompletedTodos(input: RemoveCompletedTodosInput!): RemoveCompletedTodosPayload
		removeTodo(input: RemoveTodoInput!): RemoveTodoPayload
		renameTodo(input: RenameTodoInput!): RenameTodoPayload
	}

	input AddTodoInput {
		text: String!
		clientMutationId: String
	}

	type AddTodoPayload {
		todoEdge: TodoEdge!
		viewer: User!
		clientMutationId: String
	}

	input ChangeTodoStatusInput {
		id: ID!
		complete: Boolean!
		clientMutationId: String
	}

	type ChangeTodoStatusPayload {
		todo: Todo!
		viewer: User!
		clientMutationId: String
	}

	input MarkAllTodosInput {
		complete: Boolean!
		clientMutationId: String
	}

	type MarkAllTodosPayload {
		changedTodos: [Todo!]!
		viewer: User!
		clientMutationId: String
	}

	input RemoveCompletedTodosInput {
		clientMutationId: String
	}

	type RemoveCompletedTodosPayload {
		deletedTodoIds: [ID!]!
		viewer: User!
		clientMutationId: String
	}

	input RemoveTodoInput {
		id: ID!
		clientMutationId: String
	}

	type RemoveTodoPayload {
		deletedTodoId: ID!
		viewer: User!
		clientMutationId: String
	}

	input RenameTodoInput {
		id: ID!
		text: String!
		clientMutationId: String
	}

	type RenameTodoPayload {
		todo: Todo!
		clientMutationId: String
	}
`
